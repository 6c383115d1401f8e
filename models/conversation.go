package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ConversationStatus string

const (
	ConversationActive ConversationStatus = "active"
	ConversationClosed ConversationStatus = "closed"
)

type MessageDirection string

const (
	DirectionInbound  MessageDirection = "inbound"
	DirectionOutbound MessageDirection = "outbound"
)

type Conversation struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	WorkspaceID uuid.UUID `gorm:"type:uuid;index;not null" json:"workspaceId"`
	ContactID   uuid.UUID `gorm:"type:uuid;index;not null" json:"contactId"`

	Subject string             `json:"subject"`
	Status  ConversationStatus `gorm:"type:varchar(10);default:'active';not null" json:"status"`

	IsRead           bool `gorm:"default:false" json:"isRead"`
	AutomationPaused bool `gorm:"default:false" json:"automationPaused"`

	LastMessageAt time.Time `json:"lastMessageAt"`

	Messages []Message `gorm:"foreignKey:ConversationID" json:"messages,omitempty"`
	Contact  *Contact  `gorm:"foreignKey:ContactID" json:"contact,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Message struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ConversationID uuid.UUID `gorm:"type:uuid;index;not null" json:"conversationId"`

	Direction MessageDirection `gorm:"type:varchar(10);not null" json:"direction"`
	Channel   string           `gorm:"type:varchar(10);default:'email'" json:"channel"` // email, sms
	SenderID  *uuid.UUID       `gorm:"type:uuid" json:"senderId"`

	Subject string `json:"subject"`
	Content string `gorm:"type:text;not null" json:"content"`
	Status  string `gorm:"type:varchar(10);default:'sent'" json:"status"` // sent, delivered, read

	CreatedAt time.Time `json:"createdAt"`
}

func (c *Conversation) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}

func (m *Message) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return
}
