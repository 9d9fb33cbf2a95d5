package models

// Tag represents a Steam store tag (e.g. "FPS", "Co-op").
type Tag struct {
	TagID   int64  `gorm:"column:tag_id;primaryKey;autoIncrement" json:"tag_id"`
	TagName string `gorm:"column:tag_name;size:255;uniqueIndex;not null" json:"tag_name"`
}

func (Tag) TableName() string { return "game_tags" }

// GameTag links one game to one tag. Rows are created by the sync engine
// and never removed; deleting either parent cascades here.
type GameTag struct {
	AppID  int64    `gorm:"column:appid;primaryKey;autoIncrement:false" json:"appid"`
	TagID  int64    `gorm:"column:tag_id;primaryKey;autoIncrement:false" json:"tag_id"`
	Weight *float64 `gorm:"column:weight" json:"weight,omitempty"`

	Game Game `gorm:"foreignKey:AppID;references:AppID;constraint:OnDelete:CASCADE" json:"-"`
	Tag  Tag  `gorm:"foreignKey:TagID;references:TagID;constraint:OnDelete:CASCADE" json:"-"`
}

func (GameTag) TableName() string { return "tags_of_games" }
