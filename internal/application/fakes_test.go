package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/raushan165/Taskpilot/internal/domain/entity"
	repo "github.com/raushan165/Taskpilot/internal/domain/repository"
)

type fakeUsers struct {
	mu     sync.Mutex
	byID   map[string]*entity.User
	seq    int
	getErr error
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: map[string]*entity.User{}}
}

func (f *fakeUsers) Create(_ context.Context, u *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.byID {
		if strings.EqualFold(existing.Email, u.Email) {
			return repo.ErrDuplicate
		}
	}
	f.seq++
	u.ID = fmt.Sprintf("u-%d", f.seq)
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	f.byID[u.ID] = &cp
	return nil
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, u := range f.byID {
		if strings.EqualFold(u.Email, strings.TrimSpace(email)) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeUsers) Update(_ context.Context, u *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.byID[u.ID]
	if !ok {
		return repo.ErrNotFound
	}
	existing.Name = u.Name
	existing.AvatarURL = u.AvatarURL
	return nil
}

func (f *fakeUsers) UpdatePassword(_ context.Context, id, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.byID[id]
	if !ok {
		return repo.ErrNotFound
	}
	existing.Password = hash
	return nil
}

func (f *fakeUsers) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.byID)
}

type fakeOTPs struct {
	mu    sync.Mutex
	codes map[string]entity.OTP
}

func newFakeOTPs() *fakeOTPs { return &fakeOTPs{codes: map[string]entity.OTP{}} }

func (f *fakeOTPs) Save(_ context.Context, otp entity.OTP) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.codes[strings.ToLower(otp.Email)] = otp
	return nil
}

func (f *fakeOTPs) Match(_ context.Context, email, code string, purpose entity.OTPPurpose) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	otp, ok := f.codes[strings.ToLower(email)]
	return ok && otp.Purpose == purpose && otp.Code == code, nil
}

func (f *fakeOTPs) DeleteAll(_ context.Context, email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.codes, strings.ToLower(email))
	return nil
}

type sentMail struct {
	To      string
	Purpose string
	Data    map[string]any
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (f *fakeNotifier) Send(_ context.Context, to, purpose string, data map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{To: to, Purpose: purpose, Data: data})
	return nil
}

func (f *fakeNotifier) last() sentMail {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.sent) == 0 {
		return sentMail{}
	}
	return f.sent[len(f.sent)-1]
}

// lastCode returns the code carried by the most recent mail.
func (f *fakeNotifier) lastCode() string {
	code, _ := f.last().Data["Code"].(string)
	return code
}

type fakeVerifier struct {
	identity *Identity
	err      error
}

func (f fakeVerifier) Verify(context.Context, string) (*Identity, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.identity, nil
}

type fakeIndex struct {
	indexed []*entity.ContactMessage
	err     error
}

func (f *fakeIndex) Index(_ context.Context, m *entity.ContactMessage) error {
	if f.err != nil {
		return f.err
	}
	f.indexed = append(f.indexed, m)
	return nil
}

func (f *fakeIndex) Search(_ context.Context, q string, size int) ([]entity.ContactMessage, error) {
	var out []entity.ContactMessage
	for _, m := range f.indexed {
		if strings.Contains(m.Message, q) && len(out) < size {
			out = append(out, *m)
		}
	}
	return out, nil
}

type fakeObjects struct {
	paths []string
	body  string
}

func (f *fakeObjects) Upload(_ context.Context, objectPath, _ string, r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	f.paths = append(f.paths, objectPath)
	f.body = string(b)
	return "https://storage.googleapis.com/avatars-test/" + objectPath, nil
}

var errBoom = errors.New("boom")
