package main

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/desertwitch/gofs"
	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"
)

//nolint:gochecknoglobals
var (
	keyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(10)
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
)

// statReport is the printable metadata of a path.
type statReport struct {
	Path     string    `yaml:"path"`
	Type     string    `yaml:"type"`
	Size     uint64    `yaml:"size"`
	Mode     string    `yaml:"mode"`
	UID      uint32    `yaml:"uid"`
	GID      uint32    `yaml:"gid"`
	Modified time.Time `yaml:"modified"`
	Accessed time.Time `yaml:"accessed"`
	Symlink  string    `yaml:"symlink,omitempty"`
	MimeType string    `yaml:"mimeType,omitempty"`
	Hash     string    `yaml:"hash,omitempty"`
}

func (a *app) statReport(path string, withHash bool) (*statReport, error) {
	file := a.fsys.File(path)

	meta, err := file.Metadata()
	if err != nil {
		return nil, err
	}

	report := &statReport{
		Path:     path,
		Type:     meta.Type.String(),
		Size:     meta.Size,
		Mode:     fmt.Sprintf("%#o", meta.Perms),
		UID:      meta.UID,
		GID:      meta.GID,
		Modified: meta.ModifiedAt,
		Accessed: meta.AccessedAt,
		Symlink:  meta.SymlinkTo,
	}

	if meta.Type == gofs.TypeDir {
		size, err := a.fsys.Directory(path).Size()
		if err != nil {
			return nil, err
		}
		report.Size = size

		return report, nil
	}

	if !file.IsFile() {
		return report, nil
	}

	if report.MimeType, err = file.MimeType(); err != nil {
		return nil, err
	}

	if withHash {
		if report.Hash, err = file.Hash(); err != nil {
			return nil, err
		}
	}

	return report, nil
}

func writeReport(w io.Writer, r *statReport) {
	row := func(key string, value string) {
		if value == "" {
			return
		}
		fmt.Fprintln(w, lipgloss.JoinHorizontal(lipgloss.Top, keyStyle.Render(key), valueStyle.Render(value)))
	}

	row("Path", r.Path)
	row("Type", r.Type)
	row("Size", fmt.Sprintf("%s (%d bytes)", humanize.IBytes(r.Size), r.Size))
	row("Mode", r.Mode)
	row("Owner", fmt.Sprintf("%d:%d", r.UID, r.GID))
	row("Modified", fmt.Sprintf("%s (%s)", r.Modified.Format(time.RFC3339), humanize.Time(r.Modified)))
	row("Accessed", fmt.Sprintf("%s (%s)", r.Accessed.Format(time.RFC3339), humanize.Time(r.Accessed)))
	row("Symlink", r.Symlink)
	row("MIME", r.MimeType)
	row("BLAKE3", r.Hash)
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2) //nolint:mnd

	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}

	return enc.Close()
}
