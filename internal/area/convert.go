package area

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Convert parses every .are file in inputDir and writes one YAML area per
// file into outputDir. Returns an error if the input directory holds no .are
// files. midgaard converts first so the server's default zone is ready even
// if a later file fails.
func Convert(inputDir, outputDir string, out io.Writer) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	files, err := filepath.Glob(filepath.Join(inputDir, "*.are"))
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no .are files found in %s", inputDir)
	}

	sort.Slice(files, func(i, j int) bool {
		si, sj := stem(files[i]), stem(files[j])
		if (si == "midgaard") != (sj == "midgaard") {
			return si == "midgaard"
		}
		return si < sj
	})

	for _, f := range files {
		parsed, err := ParseFile(f)
		if err != nil {
			return err
		}

		data, err := yaml.Marshal(parsed)
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", f, err)
		}

		target := filepath.Join(outputDir, Slug(stem(f))+".yaml")
		if err := os.WriteFile(target, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", target, err)
		}
		fmt.Fprintf(out, "wrote %s\n", target)
	}

	return nil
}
