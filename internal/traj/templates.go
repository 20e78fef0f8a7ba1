package traj

import (
	"bytes"
	"fmt"
	"text/template"
)

// stripData is the substitution context for the per-mutation stripping files.
type stripData struct {
	Mutation   string
	Topology   string
	Trajectory string
	Output     string
	StartFrame int
	EndFrame   int
	StripMask  string
	InputFile  string
	Partition  string
	Nodelist   string
	CPUs       int
	Memory     string
	Modules    []string
}

// stripInputTemplate extracts the configured frame window, reimages, and
// removes solvent before writing the reduced trajectory.
const stripInputTemplate = `parm {{.Topology}}

trajin {{.Trajectory}} {{.StartFrame}} {{.EndFrame}}

autoimage origin
strip {{.StripMask}}

trajout {{.Output}} netcdf
run
`

// stripScriptTemplate is the SLURM wrapper running cpptraj on a compute node.
const stripScriptTemplate = `#!/bin/bash
#SBATCH --job-name=strip_{{.Mutation}}
#SBATCH --output=strip_{{.Mutation}}.out
#SBATCH --error=strip_{{.Mutation}}.err
#SBATCH --nodes=1
#SBATCH --ntasks=1
#SBATCH --cpus-per-task={{.CPUs}}
#SBATCH --mem={{.Memory}}
#SBATCH --partition={{.Partition}}
#SBATCH --nodelist={{.Nodelist}}

{{range .Modules}}module load {{.}}
{{end}}module list

echo "Starting trajectory stripping for {{.Mutation}}..."
echo "Input file: {{.InputFile}}"
echo "Working directory: $(pwd)"

cpptraj -i {{.InputFile}} > strip_{{.Mutation}}.log 2>&1

echo "Stripping completed!"
`

func renderStrip(name, src string, data stripData) (string, error) {
	tpl, err := template.New(name).Option("missingkey=error").Parse(src)
	if err != nil {
		return "", fmt.Errorf("parse template %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute template %s: %w", name, err)
	}
	return buf.String(), nil
}
