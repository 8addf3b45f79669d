package localstore

import (
	"context"
	"strings"
	"time"

	"github.com/Valentin6743/LS/internal/aggregate"
	"github.com/Valentin6743/LS/internal/apperr"
	"github.com/Valentin6743/LS/internal/models"
	"github.com/google/uuid"
)

func requestID(r *models.FriendRequest) uuid.UUID { return r.ID }

func (s *Store) Friends(ctx context.Context) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneAll(s.friends, models.User.Clone), nil
}

// FriendRequests returns the pending requests in both directions.
func (s *Store) FriendRequests(ctx context.Context) ([]models.FriendRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneAll(s.requests, models.FriendRequest.Clone), nil
}

// AddFriend sends a friend request to the user with the given tag. A request
// to a tag that is still pending is returned as is.
func (s *Store) AddFriend(ctx context.Context, tag string) (*models.FriendRequest, error) {
	tag = strings.TrimSpace(tag)
	if !models.ValidTag(tag) {
		return nil, apperr.Invalid("tag", "must be # followed by digits")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if tag == s.current.Tag {
		return nil, apperr.Invalid("tag", "cannot befriend yourself")
	}
	for _, r := range s.requests {
		if r.ToTag == tag && r.From.ID == s.current.ID && r.Status == models.RequestPending {
			out := r.Clone()
			return &out, nil
		}
	}
	r := models.FriendRequest{
		ID:        s.newID(),
		From:      s.current.Profile(),
		ToTag:     tag,
		Status:    models.RequestPending,
		CreatedAt: s.stamp(),
	}
	s.requests = append(s.requests, r)
	return &r, nil
}

// HandleFriendRequest accepts or declines a request sent to the current
// user. Either way the request is removed; accepting adds the requester as an
// offline contact. The user's own outgoing requests are left alone.
func (s *Store) HandleFriendRequest(ctx context.Context, id uuid.UUID, action models.RequestAction) error {
	if err := models.Check("action", action); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.requests, id, requestID)
	if i < 0 || s.requests[i].From.ID == s.current.ID {
		return nil
	}
	r := s.requests[i]
	s.requests = append(s.requests[:i], s.requests[i+1:]...)
	if action == models.Accept {
		s.friends = append(s.friends, contact(r.From, s.stamp()))
	}
	return nil
}

func contact(p models.Profile, now time.Time) models.User {
	u := models.User{
		ID:        p.ID,
		FullName:  p.Name,
		Tag:       p.Tag,
		Presence:  models.Offline,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if p.AvatarURL != "" {
		avatar := p.AvatarURL
		u.AvatarURL = &avatar
	}
	return u
}

func (s *Store) isChannel(id uuid.UUID) bool {
	for _, g := range s.groups {
		for _, c := range g.Channels {
			if c.ID == id {
				return true
			}
		}
	}
	return false
}

// Messages returns the conversation with conversationID in send order: the
// posts of a channel, or the direct messages between the current user and
// that contact.
func (s *Store) Messages(ctx context.Context, conversationID uuid.UUID) ([]models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	conv := aggregate.Conversation(s.current.ID, conversationID, s.messages)
	return cloneAll(conv, models.Message.Clone), nil
}

// Inbox returns every message of the session: its direct messages and the
// posts of its groups' channels.
func (s *Store) Inbox(ctx context.Context) ([]models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneAll(s.messages, models.Message.Clone), nil
}

// SendMessage appends a read message from senderID to the conversation.
func (s *Store) SendMessage(ctx context.Context, content string, conversationID, senderID uuid.UUID) (*models.Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperr.Invalid("content", "is required")
	}
	if conversationID == uuid.Nil {
		return nil, apperr.Invalid("conversation_id", "is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.stamp()
	m := models.Message{
		ID:        s.newID(),
		SenderID:  senderID,
		Content:   content,
		ReadAt:    &now,
		CreatedAt: now,
	}
	switch {
	case s.isChannel(conversationID):
		m.ChannelID = &conversationID
	case senderID == conversationID:
		me := s.current.ID
		m.RecipientID = &me
	default:
		m.RecipientID = &conversationID
	}
	s.messages = append(s.messages, m)
	out := m.Clone()
	return &out, nil
}
