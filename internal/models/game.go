package models

// Game represents one Steam game as stored in the legacy `games` table.
// AppID is the Steam-assigned identity and is never generated locally.
type Game struct {
	AppID   int64  `gorm:"column:appid;primaryKey;autoIncrement:false" json:"appid"`
	Name    string `gorm:"column:name;size:255;not null" json:"name"`
	Ranking *int   `gorm:"column:ranking" json:"ranking"`
}

// TableName keeps the table name the sync pipeline has always written to.
func (Game) TableName() string { return "games" }
