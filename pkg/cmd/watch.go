package cmd

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v3"
)

// watchDebounce is how long the watcher waits for changes to settle before
// checking the schema again.
const watchDebounce = 100 * time.Millisecond

// watchCmd checks a schema file, then checks it again whenever a schema file
// in its directory tree changes. It runs until interrupted.
//
// Examples:
//
//	definer watch
//	definer watch schema/main.surql
func (a *app) watchCmd() *cli.Command {
	return &cli.Command{
		Name:      "watch",
		Usage:     "Check a schema file whenever it or its imports change",
		ArgsUsage: "[file]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return a.watch(ctx, a.schemaPath(cmd), cmd.Root().Writer)
		},
	}
}

// watch runs check on path and again after every change to a schema file
// under path's directory. Check failures are reported, never returned.
func (a *app) watch(ctx context.Context, path string, w io.Writer) error {
	if _, err := os.Stat(path); err != nil {
		return errors.Wrapf(err, "failed to access path: %s", path)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "failed to create watcher")
	}
	defer func() { _ = fsw.Close() }()

	root := filepath.Dir(path)
	if err := watchDirRecursive(fsw, root); err != nil {
		return errors.Wrapf(err, "failed to watch %s", root)
	}
	a.log.WithField("dir", root).Info("watching schema files")

	a.report(path, w)

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !isSchemaChange(event, path) {
				continue
			}

			a.log.WithField("file", event.Name).Debug("schema file changed")
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = watchDirRecursive(fsw, event.Name)
				}
			}
			pending = time.After(watchDebounce)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			a.log.WithError(err).Warn("watcher error")

		case <-pending:
			pending = nil
			a.report(path, w)
		}
	}
}

// report runs check and logs a failure instead of returning it.
func (a *app) report(path string, w io.Writer) {
	if err := a.check(path, w); err != nil {
		a.log.WithField("file", path).WithError(err).Error("check failed")
	}
}

// watchDirRecursive adds a directory and its subdirectories to the watch list,
// skipping hidden directories.
func watchDirRecursive(fsw *fsnotify.Watcher, root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if !info.IsDir() {
			return nil
		}
		if strings.HasPrefix(info.Name(), ".") && path != root {
			return filepath.SkipDir
		}
		return fsw.Add(path)
	})
}

// isSchemaChange reports whether event touches the entry file, another schema
// file or a directory that may hold one.
func isSchemaChange(event fsnotify.Event, entry string) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}

	if filepath.Clean(event.Name) == filepath.Clean(entry) {
		return true
	}
	return strings.EqualFold(filepath.Ext(event.Name), schemaExt) || filepath.Ext(event.Name) == ""
}
