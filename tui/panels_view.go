package tui

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/drylogics/marketingos/campaign"
	"github.com/drylogics/marketingos/models"
)

var briefLabels = map[string]string{
	campaign.FieldCampaignName: "Campaign Name",
	campaign.FieldDescription:  "Description",
	campaign.FieldObjective:    "Objective",
	campaign.FieldStartDate:    "Start Date",
	campaign.FieldEndDate:      "End Date",
	campaign.FieldBudget:       "Budget",
	campaign.FieldNotes:        "Notes",
}

// panelRows builds the form of the mounted workflow panel.
func (m Model) panelRows() []row {
	switch p := m.shell.Current().(type) {
	case *campaign.BriefBuilder:
		return briefRows(p)
	case *campaign.AssetBoard:
		return assetRows(p)
	case *campaign.ToolSync:
		return toolSyncRows(p)
	case *campaign.Review:
		return reviewRows(p)
	case *campaign.Confirmation:
		return confirmationRows(p)
	}
	return nil
}

func nextRow(label string, fn func()) row {
	return action(label+" →", func(m *Model) tea.Cmd {
		fn()
		m.resetCursor()
		return nil
	})
}

func backRow(label string, fn func()) row {
	return action("← "+label, func(m *Model) tea.Cmd {
		fn()
		m.resetCursor()
		return nil
	})
}

func briefRows(b *campaign.BriefBuilder) []row {
	brief := b.Brief()
	rows := []row{heading("Campaign Details")}

	for _, field := range campaign.BriefFields {
		if field == campaign.FieldObjective {
			rows = append(rows, objectiveRow(b, brief.Objective))
			continue
		}
		value, _ := b.Field(field)
		rows = append(rows, editRow(briefLabels[field], value, func(m *Model, v string) {
			_ = b.SetField(field, v)
		}))
	}

	rows = append(rows, heading("Products"))
	for _, p := range b.Products() {
		rows = append(rows, toggle(p.Name, b.HasProduct(p.ID), func(*Model) { b.ToggleProduct(p.ID) }))
	}

	rows = append(rows, heading("Approver"))
	for _, a := range b.Approvers() {
		rows = append(rows, radio(a.Name, b.Approver() == a.ID, func(*Model) { b.SetApprover(a.ID) }))
	}

	if missing := b.MissingRequired(); len(missing) > 0 {
		rows = append(rows, heading("Required"))
		rows = append(rows, text("Missing: "+strings.Join(missing, ", ")))
	}

	if b.ShowSuggestions() {
		rows = append(rows, heading("AI Suggestions"))
		for _, h := range b.Hints() {
			rows = append(rows, text(fmt.Sprintf("%s %s: %s", severityIcon(h.Severity), h.Title, h.Body)))
		}
		rows = append(rows, action("Dismiss suggestions", func(*Model) tea.Cmd {
			b.DismissSuggestions()
			return nil
		}))
	}

	rows = append(rows, heading("Version History"))
	for _, h := range b.History() {
		rows = append(rows, text(fmt.Sprintf("%s · %s", h.Label, h.When)))
	}

	rows = append(rows,
		heading("Actions"),
		action("Save Draft", func(m *Model) tea.Cmd {
			b.SaveDraft()
			m.status = "Draft saved"
			return nil
		}),
		nextRow("Next: Assets", b.Next),
	)
	return rows
}

// objectiveRow cycles through the objective choices.
func objectiveRow(b *campaign.BriefBuilder, current string) row {
	opts := b.Objectives()
	name := "(empty)"
	i := slices.IndexFunc(opts, func(o models.Option) bool { return o.ID == current })
	if i >= 0 {
		name = opts[i].Name
	}
	return action("Objective: "+name, func(*Model) tea.Cmd {
		if len(opts) > 0 {
			_ = b.SetField(campaign.FieldObjective, opts[(i+1)%len(opts)].ID)
		}
		return nil
	})
}

func assetRows(a *campaign.AssetBoard) []row {
	rows := []row{heading(fmt.Sprintf("Uploaded Files (%s view)", a.ViewMode()))}

	selected, hasSel := a.Selected()
	for _, f := range a.Files() {
		label := fmt.Sprintf("%s %s · %s", fileIcon(f.Type), f.Name, f.Size)
		if a.ViewMode() == campaign.ViewList {
			label += fmt.Sprintf(" · %d%% · %s", f.Progress, strings.Join(f.Tags, ", "))
		}
		rows = append(rows, toggle(label, hasSel && selected.ID == f.ID, func(*Model) { a.Select(f.ID) }))
	}

	if hasSel {
		rows = append(rows, heading("Metadata: "+selected.Name))
		rows = append(rows,
			metadataRow(a, campaign.MetaAssetType, "Asset Type", selected.Metadata.AssetType),
			metadataRow(a, campaign.MetaUseCase, "Use Case", selected.Metadata.UseCase),
			metadataRow(a, campaign.MetaTeamOwner, "Team Owner", selected.Metadata.TeamOwner),
		)

		rows = append(rows, heading("Tags"))
		tags := slices.Clone(a.SuggestedTags())
		for _, t := range selected.Tags {
			if !slices.Contains(tags, t) {
				tags = append(tags, t)
			}
		}
		for _, t := range tags {
			rows = append(rows, toggle(t, slices.Contains(selected.Tags, t), func(*Model) { a.ToggleTag(t) }))
		}
		rows = append(rows,
			editRow("Add tag", "", func(_ *Model, v string) { a.AddTag(v) }),
			action("Remove file", func(*Model) tea.Cmd {
				a.Remove(selected.ID)
				return nil
			}),
		)
	}

	rows = append(rows, heading("Library"))
	rows = append(rows, action("Layout: "+string(a.ViewMode()), func(*Model) tea.Cmd {
		if a.ViewMode() == campaign.ViewGrid {
			a.SetViewMode(campaign.ViewList)
		} else {
			a.SetViewMode(campaign.ViewGrid)
		}
		return nil
	}))
	rows = append(rows, toggle("Show past assets", a.ShowPast(), func(*Model) { a.TogglePast() }))
	if a.ShowPast() {
		for _, p := range a.PastAssets() {
			rows = append(rows, text(fmt.Sprintf("%s %s · %s · last used %s", fileIcon(p.Type), p.Name, p.Size, p.LastUsed)))
		}
	}

	rows = append(rows,
		heading("Actions"),
		backRow("Back", a.Backward),
		nextRow("Next: Tool Sync", a.Next),
	)
	return rows
}

// metadataRow cycles a metadata field through its choices.
func metadataRow(a *campaign.AssetBoard, field, label, current string) row {
	opts := a.MetadataOptions(field)
	shown := current
	if shown == "" {
		shown = "(empty)"
	}
	return action(label+": "+shown, func(*Model) tea.Cmd {
		if len(opts) > 0 {
			i := slices.Index(opts, current)
			_ = a.SetMetadata(field, opts[(i+1)%len(opts)])
		}
		return nil
	})
}

func toolSyncRows(t *campaign.ToolSync) []row {
	cmp, crm := t.Selection()

	rows := []row{heading("Content Management Platform")}
	for _, o := range t.CMPOptions() {
		rows = append(rows, radio(o.Name, cmp == o.ID, func(*Model) { t.SelectCMP(o.ID) }))
	}
	rows = append(rows, heading("Customer Relationship Management"))
	for _, o := range t.CRMOptions() {
		rows = append(rows, radio(o.Name, crm == o.ID, func(*Model) { t.SelectCRM(o.ID) }))
	}

	rows = append(rows, heading("Connection"))
	switch {
	case !t.CanConnect():
		rows = append(rows, text("Choose a CMP and a CRM to connect"))
	case !t.Connected():
		label := "Connect Tools"
		if t.Status() == campaign.SyncSyncing {
			label = "Connecting..."
		}
		rows = append(rows, action(label, func(*Model) tea.Cmd {
			t.Connect()
			return nil
		}))
	default:
		label := "Sync Now"
		if t.Status() == campaign.SyncSyncing {
			label = "Syncing..."
		}
		rows = append(rows, action(label, func(*Model) tea.Cmd {
			t.Sync()
			return nil
		}))
	}

	rows = append(rows, heading("Imported Data"))
	for i, r := range t.Rows() {
		value := r.Value
		if value == "" {
			value = "(not synced)"
		}
		rows = append(rows, toggle(fmt.Sprintf("Override %s = %s", r.Field, value), r.Overridden, func(*Model) { t.ToggleOverride(i) }))
		if r.Overridden {
			rows = append(rows, editRow("    "+r.Field, r.Value, func(_ *Model, v string) { t.SetValue(i, v) }))
		}
	}

	rows = append(rows,
		heading("Actions"),
		backRow("Back", t.Backward),
		nextRow("Next: AI Review", t.Next),
	)
	return rows
}

func reviewRows(r *campaign.Review) []row {
	var rows []row

	flagsLabel := fmt.Sprintf("%s Flags (%d)", caret(r.FlagsExpanded()), len(r.Flags()))
	rows = append(rows, action(flagsLabel, func(*Model) tea.Cmd {
		r.ToggleFlags()
		return nil
	}))
	if r.FlagsExpanded() {
		for _, f := range r.Flags() {
			rows = append(rows, text(fmt.Sprintf("%s %s: %s (%s)", severityIcon(f.Severity), f.Title, f.Description, f.Action)))
		}
	}

	suggLabel := fmt.Sprintf("%s Suggestions (%d)", caret(r.SuggestionsExpanded()), len(r.Suggestions()))
	rows = append(rows, action(suggLabel, func(*Model) tea.Cmd {
		r.ToggleSuggestions()
		return nil
	}))
	if r.SuggestionsExpanded() {
		for _, s := range r.Suggestions() {
			rows = append(rows, text(fmt.Sprintf("💡 %s (%d%%): %s", s.Title, s.Confidence, s.Content)))
		}
	}

	rows = append(rows, toggle("AI Assistant", r.ShowChat(), func(*Model) { r.ToggleChat() }))
	if r.ShowChat() {
		for _, msg := range r.Messages() {
			who := "You"
			if msg.Sender == models.SenderAI {
				who = "AI"
			}
			rows = append(rows, text(fmt.Sprintf("%s: %s", who, msg.Text)))
		}
		rows = append(rows, editRow("Ask the assistant", "", func(_ *Model, v string) { r.Send(v) }))
	}

	rows = append(rows,
		heading("Actions"),
		backRow("Back", r.Backward),
		nextRow("Next: Confirmation", r.Next),
	)
	return rows
}

func confirmationRows(c *campaign.Confirmation) []row {
	rows := []row{heading("Sections")}
	for _, s := range campaign.Sections {
		rows = append(rows, action(fmt.Sprintf("%s %s", caret(c.Expanded(s)), s.Title()), func(*Model) tea.Cmd {
			c.ToggleSection(s)
			return nil
		}))
	}

	rows = append(rows, heading("Approver"))
	for _, a := range c.Approvers() {
		rows = append(rows, radio(a.Name, c.Approver() == a.ID, func(*Model) { c.SetApprover(a.ID) }))
	}

	rows = append(rows,
		heading("Actions"),
		backRow("Back to Brief", c.Backward),
		action("Submit for Planning", func(m *Model) tea.Cmd {
			c.Submit()
			m.status = "Campaign submitted for planning"
			return nil
		}),
	)
	return rows
}

func caret(open bool) string {
	if open {
		return "▾"
	}
	return "▸"
}

func severityIcon(s string) string {
	switch s {
	case models.SeverityHigh:
		return "🔴"
	case models.SeverityMedium, models.SeverityWarning:
		return "🟡"
	case models.SeveritySuccess:
		return "🟢"
	default:
		return "🔵"
	}
}

func fileIcon(t string) string {
	switch t {
	case models.FileTypePDF:
		return "📄"
	case models.FileTypeImage:
		return "🖼"
	case models.FileTypeVideo:
		return "🎬"
	case models.FileTypeZip:
		return "🗜"
	default:
		return "📎"
	}
}
