// SPDX-License-Identifier: GPL-2.0-or-later

// Package image writes screenshots.
package image

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"godoom/conlog"

	"github.com/pkg/errors"
)

const maxShots = 10000

// Write encodes img as PNG into a new file.
func Write(name string, img image.Image) error {
	f, err := os.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0660)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return errors.Wrapf(err, "encode %s", name)
	}
	return f.Close()
}

// Screenshot writes img to the first free godoomNNNN.png in dir.
func Screenshot(dir string, img image.Image) (string, error) {
	for i := 0; i < maxShots; i++ {
		name := filepath.Join(dir, fmt.Sprintf("godoom%04d.png", i))
		if _, err := os.Stat(name); err == nil {
			continue
		}
		if err := Write(name, img); err != nil {
			if os.IsExist(err) {
				continue
			}
			return "", err
		}
		conlog.Printf("Wrote %s\n", name)
		return name, nil
	}
	return "", errors.Errorf("%s: too many screenshots", dir)
}
