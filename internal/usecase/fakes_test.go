package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/mikiasgoitom/Convene/internal/domain/contract"
	"github.com/mikiasgoitom/Convene/internal/domain/entity"
)

// fakeUserRepo keeps users in memory and enforces email uniqueness on insert.
type fakeUserRepo struct {
	mu      sync.Mutex
	users   []*entity.User
	failGet error
	// beforeCreate runs ahead of each insert, outside the lock.
	beforeCreate func()
}

func newFakeUserRepo() *fakeUserRepo { return &fakeUserRepo{} }

func (r *fakeUserRepo) CreateUser(_ context.Context, user *entity.User) error {
	if r.beforeCreate != nil {
		r.beforeCreate()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return entity.ErrDuplicateEmail
		}
	}
	cp := *user
	r.users = append(r.users, &cp)
	return nil
}

func (r *fakeUserRepo) find(id string) *entity.User {
	for _, u := range r.users {
		if u.ID == id {
			return u
		}
	}
	return nil
}

func (r *fakeUserRepo) GetUserByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failGet != nil {
		return nil, r.failGet
	}
	u := r.find(id)
	if u == nil {
		return nil, entity.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failGet != nil {
		return nil, r.failGet
	}
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, entity.ErrNotFound
}

func (r *fakeUserRepo) GetUsersByStatus(_ context.Context, status entity.UserStatus) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*entity.User{}
	for _, u := range r.users {
		if u.Status == status {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) ApproveUser(_ context.Context, id string, role entity.UserRole) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u := r.find(id)
	if u == nil {
		return nil, entity.ErrNotFound
	}
	u.Status = entity.UserStatusApproved
	u.Role = role
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) UpdateProfileFields(_ context.Context, id string, fields map[string]interface{}) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u := r.find(id)
	if u == nil {
		return nil, entity.ErrNotFound
	}
	for k, v := range fields {
		switch k {
		case "name":
			u.Name = v.(string)
		case "phone":
			u.Phone = v.(string)
		case "address":
			u.Address = v.(string)
		case "gender":
			u.Gender = v.(string)
		case "biography":
			u.Biography = v.(string)
		case "skills":
			u.Skills = v.([]string)
		case "locations":
			u.Locations = v.([]string)
		case "socials":
			u.Socials = v.(map[string]string)
		case "updated_at":
			u.UpdatedAt = v.(time.Time)
		default:
			return nil, fmt.Errorf("unexpected field %q", k)
		}
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) UpdateProfilePicture(_ context.Context, id string, picture entity.ProfilePicture) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u := r.find(id)
	if u == nil {
		return entity.ErrNotFound
	}
	u.ProfilePicture = picture
	return nil
}

// fakeConversationRepo stores conversations and messages in memory.
type fakeConversationRepo struct {
	mu            sync.Mutex
	conversations map[string]*entity.Conversation
	messages      map[string]*entity.Message
	nextID        int
	failAppend    error
	// conversationLoads and messageLoads count reads by id.
	conversationLoads int
	messageLoads      int
}

func newFakeConversationRepo() *fakeConversationRepo {
	return &fakeConversationRepo{
		conversations: map[string]*entity.Conversation{},
		messages:      map[string]*entity.Message{},
	}
}

func (r *fakeConversationRepo) GetConversationByID(_ context.Context, id string) (*entity.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conversationLoads++
	c, ok := r.conversations[id]
	if !ok {
		return nil, entity.ErrNotFound
	}
	cp := *c
	cp.Messages = append([]string(nil), c.Messages...)
	return &cp, nil
}

func (r *fakeConversationRepo) FindOrCreateByParticipants(_ context.Context, participants []string) (*entity.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := entity.ParticipantKey(participants)
	for _, c := range r.conversations {
		if c.ParticipantKey == key {
			cp := *c
			return &cp, nil
		}
	}
	r.nextID++
	c := &entity.Conversation{
		ID:             fmt.Sprintf("conv-%d", r.nextID),
		Participants:   entity.NormalizeParticipants(participants),
		ParticipantKey: key,
		Messages:       []string{},
	}
	r.conversations[c.ID] = c
	cp := *c
	return &cp, nil
}

func (r *fakeConversationRepo) AppendMessage(_ context.Context, msg *entity.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAppend != nil {
		return r.failAppend
	}
	c, ok := r.conversations[msg.ConversationID]
	if !ok {
		return entity.ErrNotFound
	}
	cp := *msg
	r.messages[msg.ID] = &cp
	c.Messages = append(c.Messages, msg.ID)
	return nil
}

func (r *fakeConversationRepo) GetMessagesByIDs(_ context.Context, ids []string) ([]*entity.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messageLoads++
	out := make([]*entity.Message, 0, len(ids))
	for _, id := range ids {
		if m, ok := r.messages[id]; ok {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeConversationRepo) GetConversationsByParticipant(_ context.Context, userID string) ([]*entity.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*entity.Conversation{}
	for _, c := range r.conversations {
		if c.HasParticipant(userID) {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

// fakeAssetStore records uploads and deletions.
type fakeAssetStore struct {
	mu        sync.Mutex
	uploads   int
	live      map[string][]byte
	deleted   []string
	deleteErr error
	uploadErr error
}

func newFakeAssetStore() *fakeAssetStore {
	return &fakeAssetStore{live: map[string][]byte{}}
}

func (s *fakeAssetStore) Upload(_ context.Context, r io.Reader, _ int64, _ string) (*contract.StoredAsset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.uploadErr != nil {
		return nil, s.uploadErr
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return nil, err
	}
	s.uploads++
	id := fmt.Sprintf("asset-%d", s.uploads)
	s.live[id] = buf.Bytes()
	return &contract.StoredAsset{ExternalID: id, URL: "https://cdn.test/" + id}, nil
}

func (s *fakeAssetStore) Delete(_ context.Context, externalID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.deleteErr != nil {
		return s.deleteErr
	}
	delete(s.live, externalID)
	s.deleted = append(s.deleted, externalID)
	return nil
}

// fakeHasher "hashes" by prefixing, which keeps tests fast.
type fakeHasher struct{ fail bool }

func (h fakeHasher) HashPassword(password string) (string, error) {
	if h.fail {
		return "", errors.New("hash failure")
	}
	return "hashed:" + password, nil
}

func (h fakeHasher) ComparePasswordHash(password, hashedPassword string) error {
	if "hashed:"+password != hashedPassword {
		return errors.New("password verification failed")
	}
	return nil
}

// fakeJWT encodes claims as plain text and counts issued tokens.
type fakeJWT struct{ issued int }

func (j *fakeJWT) GenerateAccessToken(userID string, role entity.UserRole) (string, error) {
	j.issued++
	return fmt.Sprintf("%s|%s|%d", userID, role, j.issued), nil
}

func (j *fakeJWT) ParseAccessToken(token string) (*entity.Claims, error) {
	parts := strings.Split(token, "|")
	if len(parts) != 3 {
		return nil, entity.ErrInvalidToken
	}
	return &entity.Claims{UserID: parts[0], Role: entity.UserRole(parts[1])}, nil
}

type fakeMailer struct {
	sent []string
	err  error
}

func (m *fakeMailer) SendEmail(_ context.Context, to, _, _ string) error {
	m.sent = append(m.sent, to)
	return m.err
}

type fakeCache struct {
	users       map[string]*entity.User
	invalidated []string
}

func newFakeCache() *fakeCache { return &fakeCache{users: map[string]*entity.User{}} }

func (c *fakeCache) GetUser(_ context.Context, id string) (*entity.User, bool, error) {
	u, ok := c.users[id]
	return u, ok, nil
}

func (c *fakeCache) SetUser(_ context.Context, user *entity.User) error {
	c.users[user.ID] = user
	return nil
}

func (c *fakeCache) InvalidateUser(_ context.Context, id string) error {
	delete(c.users, id)
	c.invalidated = append(c.invalidated, id)
	return nil
}

type seqUUID struct {
	mu sync.Mutex
	n  int
}

func (g *seqUUID) NewUUID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("id-%d", g.n)
}

type noopLogger struct{}

func (noopLogger) Debugf(string, ...interface{}) {}
func (noopLogger) Infof(string, ...interface{})  {}
func (noopLogger) Warnf(string, ...interface{})  {}
func (noopLogger) Errorf(string, ...interface{}) {}
func (noopLogger) Fatalf(string, ...interface{}) {}

type countingMetrics struct {
	mu             sync.Mutex
	registrations  map[string]int
	logins         map[string]int
	approvals      int
	messages       int
	deleteFailures int
}

func newCountingMetrics() *countingMetrics {
	return &countingMetrics{registrations: map[string]int{}, logins: map[string]int{}}
}

func (m *countingMetrics) RecordRegistration(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.registrations[outcome]++
}

func (m *countingMetrics) RecordLogin(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logins[outcome]++
}

func (m *countingMetrics) RecordApproval() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.approvals++
}

func (m *countingMetrics) RecordMessagePosted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages++
}

func (m *countingMetrics) RecordAssetDeleteFailure() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleteFailures++
}

type fakeConfig struct {
	sendApproval bool
}

func (c fakeConfig) GetAppBaseURL() string               { return "http://localhost:8080" }
func (c fakeConfig) GetAccessTokenExpiry() time.Duration { return time.Hour }
func (c fakeConfig) GetSendApprovalEmail() bool          { return c.sendApproval }
func (c fakeConfig) GetDuplicateEmailConflict() bool     { return false }
func (c fakeConfig) GetGoogleClientID() string           { return "" }
func (c fakeConfig) GetGoogleClientSecret() string       { return "" }
func (c fakeConfig) GetGoogleRedirectURL() string        { return "" }

type fakeValidator struct{}

func (fakeValidator) ValidateEmail(email string) error {
	if !strings.Contains(email, "@") {
		return errors.New("invalid email")
	}
	return nil
}
