package bin2hex

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	ignore "github.com/sabhiram/go-gitignore"
	log "github.com/schollz/logger"

	"github.com/schollz/bin2hex/src/models"
	"github.com/schollz/bin2hex/src/utils"
)

// ConvertDir converts every regular file below inputDir into a listing
// under outputDir, keeping the relative layout. Files are converted one at a
// time in lexical order and the first error stops the walk.
func (c *Client) ConvertDir(ctx context.Context, inputDir, outputDir string) (stats []Stats, err error) {
	files, err := c.FilesToConvert(inputDir, outputDir)
	if err != nil {
		return nil, err
	}
	log.Debugf("found %d files to convert in %s", len(files), inputDir)

	for _, f := range files {
		if err = ctx.Err(); err != nil {
			return stats, err
		}
		if err = os.MkdirAll(filepath.Dir(f.Output), 0o755); err != nil {
			return stats, err
		}
		s, err := c.ConvertFile(ctx, f.Path, f.Output)
		if err != nil {
			return stats, err
		}
		stats = append(stats, s)
	}
	return stats, nil
}

// FilesToConvert lists the files ConvertDir would convert, skipping paths
// matched by the ignore file and anything inside outputDir.
func (c *Client) FilesToConvert(inputDir, outputDir string) (files []models.FileStats, err error) {
	ignorer, err := c.loadIgnore(inputDir)
	if err != nil {
		return nil, err
	}
	absOutput, err := filepath.Abs(outputDir)
	if err != nil {
		return nil, err
	}

	err = filepath.WalkDir(inputDir, func(pathName string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(inputDir, pathName)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if abs, errAbs := filepath.Abs(pathName); errAbs == nil && abs == absOutput {
			log.Debugf("skipping output directory %s", pathName)
			return filepath.SkipDir
		}
		if ignorer != nil && (ignorer.MatchesPath(rel) || (d.IsDir() && ignorer.MatchesPath(rel+"/"))) {
			log.Debugf("ignoring %s", rel)
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if rel == c.Options.IgnoreFile || !d.Type().IsRegular() {
			log.Debugf("skipping %s", rel)
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		files = append(files, models.FileStats{
			Name:    rel,
			Path:    pathName,
			Output:  utils.OutputName(filepath.Join(outputDir, filepath.FromSlash(rel)), models.DEFAULT_EXTENSION),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
		return nil
	})
	return files, err
}

func (c *Client) loadIgnore(inputDir string) (*ignore.GitIgnore, error) {
	fname := filepath.Join(inputDir, c.Options.IgnoreFile)
	if !utils.Exists(fname) {
		return nil, nil
	}
	log.Debugf("using ignore file %s", fname)
	return ignore.CompileIgnoreFile(fname)
}
