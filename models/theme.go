package models

// ThemeModel groups questions under a unique title
type ThemeModel struct {
	ID    uint   `gorm:"primaryKey"`
	Title string `gorm:"unique;not null;size:50"`

	Questions []QuestionModel `gorm:"foreignKey:ThemeID;constraint:OnDelete:CASCADE;"`
}

func (ThemeModel) TableName() string {
	return "themes"
}

type Theme struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

func (m ThemeModel) Theme() Theme {
	return Theme{ID: m.ID, Title: m.Title}
}
