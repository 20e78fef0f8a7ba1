package gbsa

import (
	"bytes"
	"fmt"
	"io/fs"
	"text/template"

	"git.home.luguber.info/inful/gbsaprep/internal/config"
)

// InputTemplate is one entry of the fixed output-file table. Name and Body are
// text/template sources rendered against TemplateData.
type InputTemplate struct {
	Name string
	Body string
	Mode fs.FileMode
}

// TemplateData is the substitution context for one mutation directory.
type TemplateData struct {
	Mutation         string
	Project          string
	StripMask        string
	ReceptorResidues string
	LigandResidues   string
	StartFrame       int
	EndFrame         int
	Interval         int
	SaltConc         float64
	IGB              int
	Modules          []string
	Partition        string
	Nodelist         string
	GBSAMemory       string
}

// NewTemplateData assembles the substitution context from configuration.
func NewTemplateData(cfg *config.Config, mutation string) TemplateData {
	return TemplateData{
		Mutation:         mutation,
		Project:          cfg.Templates.Project,
		StripMask:        cfg.Templates.StripMask,
		ReceptorResidues: cfg.Templates.ReceptorResidues,
		LigandResidues:   cfg.Templates.LigandResidues,
		StartFrame:       cfg.Templates.StartFrame,
		EndFrame:         cfg.Templates.EndFrame,
		Interval:         cfg.Templates.Interval,
		SaltConc:         cfg.Templates.SaltConc,
		IGB:              cfg.Templates.IGB,
		Modules:          cfg.Templates.Modules,
		Partition:        cfg.Slurm.Partition,
		Nodelist:         cfg.Slurm.Nodelist,
		GBSAMemory:       cfg.Slurm.GBSAMemory,
	}
}

// Templates returns the fixed MM-GBSA input file table. One table entry per
// generated file; bodies reference TemplateData fields only.
func Templates() []InputTemplate {
	return []InputTemplate{
		{
			Name: "pt-strip-{{.Mutation}}.in",
			Mode: 0o644,
			Body: `parm ./strip.{{.Project}}-{{.Mutation}}_wat.prmtop

trajin {{.Project}}-{{.Mutation}}_wat_imaged_26-1025.nc

autoimage origin
strip {{.StripMask}}

trajout {{.Project}}_{{.Mutation}}_wat_MMPBSA_26-1025.nc netcdf
run
`,
		},
		{
			Name: "pt-parmstrip_rec.in",
			Mode: 0o644,
			Body: `parm ./strip.{{.Project}}-{{.Mutation}}_wat.prmtop

parmstrip {{.StripMask}}
parmstrip :{{.LigandResidues}}

parmwrite out rec.prmtop
`,
		},
		{
			Name: "pt-parmstrip_lig.in",
			Mode: 0o644,
			Body: `parm ./strip.{{.Project}}-{{.Mutation}}_wat.prmtop

parmstrip {{.StripMask}}
parmstrip :{{.ReceptorResidues}}

parmwrite out lig.prmtop
`,
		},
		{
			Name: "pt-parmstrip_com.in",
			Mode: 0o644,
			Body: `parm ./strip.{{.Project}}-{{.Mutation}}_wat.prmtop

parmstrip {{.StripMask}}

parmwrite out com.prmtop
`,
		},
		{
			Name: "MM-GBSA.sh",
			Mode: 0o755,
			Body: `#!/bin/bash
#SBATCH --job-name=mmpbsa
#SBATCH --output=mmpbsa.out
#SBATCH --error=mmpbsa.err
#SBATCH --nodes=1
#SBATCH --mem={{.GBSAMemory}}
#SBATCH --partition={{.Partition}}
#SBATCH --nodelist={{.Nodelist}}

{{range .Modules}}module load {{.}}
{{end}}module list

mpirun -np 1 MMPBSA.py.MPI -O -i MM-GBSA.in -o mmgbsa.dat -cp com.prmtop -rp rec.prmtop -lp lig.prmtop -y {{.Project}}_{{.Mutation}}_wat_MMPBSA_26-1025.nc > mmgbsa.log
`,
		},
		{
			Name: "MM-GBSA.in",
			Mode: 0o644,
			Body: `&general
   startframe={{.StartFrame}},
   endframe={{.EndFrame}},
   interval={{.Interval}},
   receptor_mask=":{{.ReceptorResidues}}",
   ligand_mask=":{{.LigandResidues}}",
   verbose=1,
   keep_files=2,
   debug_printlevel=1,
   netcdf=1,
   use_sander=1
/
&gb
  igb={{.IGB}},
  saltcon={{printf "%.3f" .SaltConc}},
/
`,
		},
	}
}

// Render produces the output filename and file content for one table entry.
func (it InputTemplate) Render(data TemplateData) (string, string, error) {
	name, err := renderString("name", it.Name, data)
	if err != nil {
		return "", "", fmt.Errorf("render filename %q: %w", it.Name, err)
	}
	body, err := renderString("body", it.Body, data)
	if err != nil {
		return "", "", fmt.Errorf("render template %q: %w", name, err)
	}
	return name, body, nil
}

func renderString(what, src string, data TemplateData) (string, error) {
	tpl, err := template.New(what).Option("missingkey=error").Parse(src)
	if err != nil {
		return "", fmt.Errorf("parse template %s: %w", what, err)
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute template %s: %w", what, err)
	}
	return buf.String(), nil
}
