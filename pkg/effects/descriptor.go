package effects

// Descriptor declaratively describes a component's lifecycle requirements.
// It is an optional hint attached to a catalog entry, not a contract the
// module is forced to satisfy: init calls naming methods the instance does
// not have are skipped.
type Descriptor struct {
	// Setup declares that the asynchronous setup step must run. When no
	// descriptor exists at all, setup runs if the instance structurally
	// exposes the capability.
	Setup bool `yaml:"setup"`

	// Init lists post-setup initialization calls, executed strictly in
	// order, each completed before the next begins.
	Init []Call `yaml:"init"`

	// AutoStart controls whether Start is invoked once initialization
	// completes. Nil means true; effects that must wait for explicit user
	// action set it to false.
	AutoStart *bool `yaml:"autoStart"`
}

// Call names a method on the instance plus explicit arguments.
type Call struct {
	Method string `yaml:"method"`
	Args   []any  `yaml:"args"`
}

// ShouldAutoStart resolves the AutoStart tri-state; a nil descriptor or
// nil field means yes.
func (d *Descriptor) ShouldAutoStart() bool {
	if d == nil || d.AutoStart == nil {
		return true
	}
	return *d.AutoStart
}

// WantsSetup reports whether setup should run for an instance with the
// given capability set.
func (d *Descriptor) WantsSetup(caps Capabilities) bool {
	if d == nil {
		return caps.Setup
	}
	return d.Setup
}
