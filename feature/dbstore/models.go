package dbstore

// LanguageRow is a project language.
type LanguageRow struct {
	ID         uint   `gorm:"primaryKey"`
	Code       string `gorm:"size:35;uniqueIndex;not null"`
	Name       string `gorm:"size:100"`
	NativeName string `gorm:"size:100"`
	Position   int    `gorm:"not null;default:0"`
	Reference  bool   `gorm:"not null;default:false"`
}

// TableName overrides the table name.
func (LanguageRow) TableName() string {
	return "languages"
}

// TranslationRow is one translated key of a language and namespace.
type TranslationRow struct {
	ID        uint   `gorm:"primaryKey"`
	Language  string `gorm:"size:35;not null;uniqueIndex:idx_translation_key"`
	Namespace string `gorm:"size:100;not null;uniqueIndex:idx_translation_key"`
	Key       string `gorm:"column:translation_key;size:255;not null;uniqueIndex:idx_translation_key"`
	Value     string `gorm:"type:text"`
}

// TableName overrides the table name.
func (TranslationRow) TableName() string {
	return "translations"
}
