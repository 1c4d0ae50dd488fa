package chat

import "time"

// Source identifies where a chat message came from.
type Source string

const (
	SourceWeb  Source = "web"
	SourceGame Source = "mc"
)

// Message represents the 'chat_messages' table.
type Message struct {
	ID          uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	DatePosted  time.Time `gorm:"column:date_posted;not null;index" json:"datePosted"`
	Source      Source    `gorm:"column:source;size:8;not null" json:"source"`
	UUID        string    `gorm:"column:uuid;size:64" json:"uuid,omitempty"`
	DisplayName string    `gorm:"column:display_name;not null" json:"displayName"`
	Content     string    `gorm:"column:content;not null" json:"content"`
}

func (Message) TableName() string { return "chat_messages" }
