package cmd

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/pders01/version-archive/internal/models"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var bundleOutput string

var bundleCmd = &cobra.Command{
	Use:   "bundle [version...]",
	Short: "Bundle the archive for external storage",
	Long: `Create a tar.gz of the archive root for backup or transfer.

With version arguments only those version directories are included; the
manifest is always included.

Examples:
  version-archive bundle                  # Bundle every version
  version-archive bundle 1.2.0 1.3.0      # Bundle two versions
  version-archive bundle --output site-archive.tar.gz`,
	RunE: runBundle,
}

func init() {
	rootCmd.AddCommand(bundleCmd)

	bundleCmd.Flags().StringVar(&bundleOutput, "output", "", "Output file path (default: <root>-<date>.tar.gz)")
}

func runBundle(cmd *cobra.Command, args []string) error {
	log := newLogger()
	defer log.Sync()

	store := openStore(log)

	available, err := store.VersionDirs()
	if err != nil {
		return err
	}

	selected := available
	if len(args) > 0 {
		known := make(map[string]bool, len(available))
		for _, v := range available {
			known[v] = true
		}
		selected = nil
		for _, v := range args {
			if !known[v] {
				return fmt.Errorf("version not found in archive: %s", v)
			}
			selected = append(selected, v)
		}
	}

	if len(selected) == 0 {
		fmt.Println("No archived versions found")
		return nil
	}

	outputFile := bundleOutput
	if outputFile == "" {
		outputFile = fmt.Sprintf("%s-%s.tar.gz", filepath.Base(store.Root()), time.Now().Format(models.ISODate))
	}

	fmt.Printf("Bundling %d version(s) to: %s\n", len(selected), outputFile)
	fmt.Println()

	if err := createBundle(store.Fs(), store.Root(), outputFile, selected); err != nil {
		return fmt.Errorf("failed to create bundle: %w", err)
	}

	fileInfo, err := os.Stat(outputFile)
	if err == nil {
		fmt.Println()
		successf("Bundle created: %s (%.2f KB)", outputFile, float64(fileInfo.Size())/1024)
	} else {
		fmt.Println()
		successf("Bundle created: %s", outputFile)
	}

	return nil
}

func createBundle(fs afero.Fs, root, filename string, versions []string) error {
	outFile, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer outFile.Close()

	gzWriter := gzip.NewWriter(outFile)
	defer gzWriter.Close()

	tarWriter := tar.NewWriter(gzWriter)
	defer tarWriter.Close()

	prefix := filepath.Base(root)

	manifest := models.ManifestPath(root)
	if ok, _ := afero.Exists(fs, manifest); ok {
		if err := addToBundle(fs, tarWriter, root, prefix, manifest); err != nil {
			return err
		}
	}

	for i, version := range versions {
		fmt.Printf("  [%d/%d] Adding %s...\n", i+1, len(versions), version)

		dir := models.VersionDir(root, version)
		err := afero.Walk(fs, dir, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			return addToBundle(fs, tarWriter, root, prefix, path)
		})
		if err != nil {
			return fmt.Errorf("failed to bundle %s: %w", version, err)
		}
	}

	return nil
}

func addToBundle(fs afero.Fs, tw *tar.Writer, root, prefix, path string) error {
	info, err := fs.Stat(path)
	if err != nil {
		return err
	}

	relPath, err := filepath.Rel(root, path)
	if err != nil {
		return err
	}

	header, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return err
	}
	header.Name = filepath.ToSlash(filepath.Join(prefix, relPath))
	if info.IsDir() {
		header.Name += "/"
	}

	if err := tw.WriteHeader(header); err != nil {
		return err
	}

	if !info.Mode().IsRegular() {
		return nil
	}

	file, err := fs.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = io.Copy(tw, file)
	return err
}
