package domain

import "time"

// StoreName identifies which store emitted a change
type StoreName string

const (
	StoreContent  StoreName = "content"
	StoreTheme    StoreName = "theme"
	StoreSession  StoreName = "session"
	StoreSettings StoreName = "cms-settings"
)

// ChangeKind describes the mutation that produced a change event
type ChangeKind string

const (
	ChangeLoaded         ChangeKind = "loaded"
	ChangeSectionUpdated ChangeKind = "section_updated"
	ChangePostUpserted   ChangeKind = "post_upserted"
	ChangePostDeleted    ChangeKind = "post_deleted"
	ChangeSEOUpdated     ChangeKind = "seo_updated"
	ChangeSettings       ChangeKind = "settings_updated"
	ChangeThemeMode      ChangeKind = "theme_mode"
	ChangeThemeColor     ChangeKind = "theme_color"
	ChangeThemeFont      ChangeKind = "theme_font"
	ChangeLogin          ChangeKind = "login"
	ChangeLogout         ChangeKind = "logout"
)

// ChangeEvent is published after a mutation has been persisted
type ChangeEvent struct {
	Store   StoreName   `json:"store"`
	Kind    ChangeKind  `json:"kind"`
	Section SectionName `json:"section,omitempty"`
	Key     string      `json:"key,omitempty"` // post slug, color or font key
	At      time.Time   `json:"at"`
}
