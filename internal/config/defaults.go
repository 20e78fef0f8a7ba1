package config

// Default returns the built-in configuration matching the POT1 ssDNA workflow
// the templates were originally written for.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults fills zero values after unmarshalling.
func (c *Config) applyDefaults() {
	t := &c.Templates
	if t.Project == "" {
		t.Project = "1xjv_POT1_ssDNA"
	}
	if t.StripMask == "" {
		t.StripMask = ":WAT,K+"
	}
	if t.ReceptorResidues == "" {
		t.ReceptorResidues = "1-294"
	}
	if t.LigandResidues == "" {
		t.LigandResidues = "295-304"
	}
	if t.StartFrame == 0 {
		t.StartFrame = 167500
	}
	if t.EndFrame == 0 {
		t.EndFrame = 177500
	}
	if t.Interval == 0 {
		t.Interval = 1
	}
	if t.SaltConc == 0 {
		t.SaltConc = 0.150
	}
	if t.IGB == 0 {
		t.IGB = 5
	}
	if len(t.Modules) == 0 {
		t.Modules = []string{"openmpi4/4.1.1", "cuda/11.7.0", "amber/24-cuda"}
	}

	s := &c.Strip
	if s.StartFrame == 0 {
		s.StartFrame = 825
	}
	if s.EndFrame == 0 {
		s.EndFrame = 850
	}
	if s.OutputSuffix == "" {
		s.OutputSuffix = "solv_gbsa_750"
	}
	if s.CpptrajBinary == "" {
		s.CpptrajBinary = "cpptraj"
	}
	if s.CpptrajTimeout == "" {
		s.CpptrajTimeout = "30s"
	}

	sl := &c.Slurm
	if sl.SbatchBinary == "" {
		sl.SbatchBinary = "sbatch"
	}
	if sl.Partition == "" {
		sl.Partition = "cisneros"
	}
	if sl.Nodelist == "" {
		sl.Nodelist = "g-02-04"
	}
	if sl.CPUsPerTask == 0 {
		sl.CPUsPerTask = 4
	}
	if sl.Memory == "" {
		sl.Memory = "16G"
	}
	if sl.GBSAMemory == "" {
		sl.GBSAMemory = "6G"
	}
}
