package converter

import (
	"path/filepath"
	"strings"

	"github.com/PerArneng/video-compress/internal/preset"
)

// OutputPath derives the output file path for input converted with p. The
// name is the input's stem plus the preset id, carrying the codec's
// container extension: clip.mp4 with av1_fhd_5 becomes clip_av1_fhd_5.mkv.
// With an empty outputDir the file lands next to its input. The derived
// path never equals the input path.
func OutputPath(input string, p preset.Preset, outputDir string) string {
	name := outputName(input, p)
	if outputDir == "" {
		return filepath.Join(filepath.Dir(input), name)
	}
	return filepath.Join(outputDir, name)
}

func outputName(input string, p preset.Preset) string {
	base := filepath.Base(input)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return stem + "_" + p.ID + p.Codec.Extension()
}

// BuildJobs pairs each input file with its derived output path. root is the
// directory the inputs were discovered under; when both root and outputDir
// are set, the source tree's relative layout is mirrored beneath outputDir.
func BuildJobs(inputs []string, root string, p preset.Preset, outputDir string) []Job {
	jobs := make([]Job, 0, len(inputs))
	for _, input := range inputs {
		jobs = append(jobs, Job{
			InputPath:  input,
			OutputPath: jobOutputPath(input, root, p, outputDir),
			Preset:     p,
		})
	}
	return jobs
}

func jobOutputPath(input, root string, p preset.Preset, outputDir string) string {
	if outputDir == "" || root == "" {
		return OutputPath(input, p, outputDir)
	}
	rel, err := filepath.Rel(root, input)
	if err != nil {
		return OutputPath(input, p, outputDir)
	}
	return filepath.Join(outputDir, filepath.Dir(rel), outputName(input, p))
}
