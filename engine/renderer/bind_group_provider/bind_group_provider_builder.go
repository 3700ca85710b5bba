package bind_group_provider

// BindGroupProviderOption is a functional option used to configure a BindGroupProvider during construction.
type BindGroupProviderOption func(*bindGroupProvider)

// WithSharedSamplers marks the provider's samplers as borrowed so Release leaves them alive.
// Used when one sampler is bound by every plane.
//
// Returns:
//   - BindGroupProviderOption: a function that disables sampler ownership for this provider
func WithSharedSamplers() BindGroupProviderOption {
	return func(p *bindGroupProvider) {
		p.ownsSamplers = false
	}
}
