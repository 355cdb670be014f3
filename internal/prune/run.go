package prune

import (
	"github.com/morozRed/refprune/internal/fileutil"
)

type RunOptions struct {
	// Attachments are the attachment category file names under Items.
	Attachments []string
	// Remove are weapon file names under Items the user wants gone.
	Remove []string
}

type Result struct {
	Attachments     *AttachmentResult `json:"attachments"`
	WeaponsDangling []string          `json:"weapons_dangling,omitempty"`
	Removed         []NodeRemoval     `json:"removed,omitempty"`
	Skipped         []NodeRemoval     `json:"skipped,omitempty"`
	Written         []string          `json:"written,omitempty"`
}

// Run prunes unused attachments, cleans up references to them, then cleans up
// references to identifiers of the weapons being removed. Each step sees the
// files as left by the previous one. The first error stops the run; files
// already rewritten stay rewritten. A missing reference folder is reported
// before anything is written.
func (p *Pruner) Run(opts RunOptions) (*Result, error) {
	if err := p.layout.CheckReferenceDirs(); err != nil {
		return nil, err
	}

	removals := make([]string, 0, len(opts.Remove))
	for _, name := range opts.Remove {
		if name = fileutil.EnsureJSONExt(name); name != "" {
			removals = append(removals, name)
		}
	}

	result := &Result{}

	attachments, err := p.PruneAttachments(opts.Attachments, removals)
	if err != nil {
		return nil, err
	}
	result.Attachments = attachments
	if err := p.cascadeInto(result, attachments.Dangling); err != nil {
		return nil, err
	}

	dangling, err := p.ResolveWeapons(removals)
	if err != nil {
		return nil, err
	}
	result.WeaponsDangling = dangling
	if err := p.cascadeInto(result, dangling); err != nil {
		return nil, err
	}

	for _, file := range p.reader.Written() {
		result.Written = append(result.Written, p.layout.Rel(file))
	}
	return result, nil
}

func (p *Pruner) cascadeInto(result *Result, dead []string) error {
	if len(dead) == 0 {
		return nil
	}
	cascade, err := p.Cascade(dead)
	if err != nil {
		return err
	}
	result.Removed = append(result.Removed, cascade.Removed...)
	result.Skipped = append(result.Skipped, cascade.Skipped...)
	return nil
}
