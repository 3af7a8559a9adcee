package tui

import "github.com/rgehrsitz/hpgo/internal/tui/tuistyles"

// Re-export styles from tuistyles so components and scenes share one palette.
var (
	ColorBorder = tuistyles.ColorBorder

	AppStyle            = tuistyles.AppStyle
	TitleStyle          = tuistyles.TitleStyle
	SubtitleStyle       = tuistyles.SubtitleStyle
	StatusBarStyle      = tuistyles.StatusBarStyle
	BorderStyle         = tuistyles.BorderStyle
	ErrorStyle          = tuistyles.ErrorStyle
	WarnStyle           = tuistyles.WarnStyle
	InfoStyle           = tuistyles.InfoStyle
	TableHighlightStyle = tuistyles.TableHighlightStyle
)

var FormatCurrency = tuistyles.FormatCurrency
