package domain

// Icon is a closed set of glyphs used by the presentation layer.
type Icon int

const (
	IconNone Icon = iota
	IconCircle
	IconClock
	IconCheckCircle
	IconArrowDown
	IconMinus
	IconArrowUp
	IconUserPlus
	IconEdit
	IconImage
	IconFileText
	IconFileArchive
	IconFile
	IconAlertCircle
)

var iconGlyphs = [...]string{
	IconNone:        " ",
	IconCircle:      "○",
	IconClock:       "◔",
	IconCheckCircle: "✔",
	IconArrowDown:   "↓",
	IconMinus:       "–",
	IconArrowUp:     "↑",
	IconUserPlus:    "+",
	IconEdit:        "✎",
	IconImage:       "▣",
	IconFileText:    "≡",
	IconFileArchive: "▤",
	IconFile:        "□",
	IconAlertCircle: "!",
}

// Glyph returns the terminal representation of the icon.
func (i Icon) Glyph() string {
	if i < 0 || int(i) >= len(iconGlyphs) {
		return iconGlyphs[IconNone]
	}
	return iconGlyphs[i]
}

// IconForColumn returns the icon shown in a column header.
func IconForColumn(c Column) Icon {
	switch c {
	case ColumnTodo:
		return IconCircle
	case ColumnInProgress:
		return IconClock
	case ColumnDone:
		return IconCheckCircle
	default:
		return IconNone
	}
}

// IconForPriority returns the icon shown next to a priority.
func IconForPriority(p Priority) Icon {
	switch p {
	case PriorityLow:
		return IconArrowDown
	case PriorityMedium:
		return IconMinus
	case PriorityHigh:
		return IconArrowUp
	default:
		return IconNone
	}
}

// IconForNotification returns the icon shown for a notification type.
func IconForNotification(t NotificationType) Icon {
	switch t {
	case NotificationTaskAssigned:
		return IconUserPlus
	case NotificationTaskUpdated:
		return IconEdit
	default:
		return IconAlertCircle
	}
}

// IconForMediaType returns the icon shown for an attachment.
func IconForMediaType(mediaType string) Icon {
	switch {
	case len(mediaType) >= 6 && mediaType[:6] == "image/":
		return IconImage
	case mediaType == "application/pdf", mediaType == "text/plain",
		mediaType == "application/msword",
		mediaType == "application/vnd.openxmlformats-officedocument.wordprocessingml.document":
		return IconFileText
	case mediaType == "application/zip", mediaType == "application/x-zip-compressed":
		return IconFileArchive
	default:
		return IconFile
	}
}
