package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"teamvault_backend/internal/models"
	"teamvault_backend/internal/repositories"
	"teamvault_backend/internal/types"

	"github.com/lib/pq"
)

// In-memory stand-ins for the repository and storage interfaces. They
// mimic the semantics the real Postgres/S3 implementations provide.

type fakeGroupRepo struct {
	groups     []*models.UploadGroup
	fileCounts map[string]int64
	createErr  error
	updateErr  error
	zeroRows   bool
	nextID     int
}

func newFakeGroupRepo() *fakeGroupRepo {
	return &fakeGroupRepo{fileCounts: map[string]int64{}}
}

func (r *fakeGroupRepo) Create(group *models.UploadGroup) error {
	if r.createErr != nil {
		return r.createErr
	}
	if group.ID == "" {
		r.nextID++
		group.ID = fmt.Sprintf("group-%d", r.nextID)
	}
	if group.CreatedAt.IsZero() {
		group.CreatedAt = time.Now()
	}
	r.groups = append(r.groups, group)
	return nil
}

func (r *fakeGroupRepo) FindByID(id string) (*models.UploadGroup, error) {
	for _, g := range r.groups {
		if g.ID == id {
			return g, nil
		}
	}
	return nil, repositories.ErrGroupNotFound
}

func (r *fakeGroupRepo) List(query types.ListQuery) ([]repositories.GroupRow, int64, error) {
	var filtered []*models.UploadGroup
	for _, g := range r.groups {
		if query.Search != "" {
			needle := strings.ToLower(query.Search)
			title := strings.ToLower(g.Title)
			notes := ""
			if g.Notes != nil {
				notes = strings.ToLower(*g.Notes)
			}
			if !strings.Contains(title, needle) && !strings.Contains(notes, needle) {
				continue
			}
		}
		if query.Tag != "" && !containsTag(g.Tags, query.Tag) {
			continue
		}
		filtered = append(filtered, g)
	}

	switch query.Sort {
	case types.SortDateAsc:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].CreatedAt.Before(filtered[j].CreatedAt)
		})
	case types.SortTitle:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].Title < filtered[j].Title
		})
	case types.SortUpdated:
		sort.SliceStable(filtered, func(i, j int) bool {
			a, b := filtered[i].FilesUpdatedAt, filtered[j].FilesUpdatedAt
			if a == nil {
				return false
			}
			if b == nil {
				return true
			}
			return a.After(*b)
		})
	default:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
		})
	}

	total := int64(len(filtered))

	start := query.Offset()
	if start > len(filtered) {
		start = len(filtered)
	}
	end := start + query.PageSize
	if end > len(filtered) {
		end = len(filtered)
	}

	rows := make([]repositories.GroupRow, 0, end-start)
	for _, g := range filtered[start:end] {
		rows = append(rows, repositories.GroupRow{
			UploadGroup: *g,
			FileCount:   r.fileCounts[g.ID],
		})
	}
	return rows, total, nil
}

func (r *fakeGroupRepo) Update(id string, fields map[string]interface{}) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	if r.zeroRows {
		return repositories.ErrGroupNotFound
	}
	g, err := r.FindByID(id)
	if err != nil {
		return err
	}
	for k, v := range fields {
		switch k {
		case "title":
			g.Title = v.(string)
		case "notes":
			if v == nil {
				g.Notes = nil
			} else {
				s := v.(string)
				g.Notes = &s
			}
		case "tags":
			g.Tags = v.(pq.StringArray)
		case "editors":
			g.Editors = v.(pq.StringArray)
		case "files_updated_at":
			t := v.(time.Time)
			g.FilesUpdatedAt = &t
		case "last_edited_at":
			t := v.(time.Time)
			g.LastEditedAt = &t
		case "last_edited_by":
			s := v.(string)
			g.LastEditedBy = &s
		}
	}
	return nil
}

func (r *fakeGroupRepo) UniqueTags() ([]string, error) {
	seen := map[string]bool{}
	var tags []string
	for _, g := range r.groups {
		for _, t := range g.Tags {
			if !seen[t] {
				seen[t] = true
				tags = append(tags, t)
			}
		}
	}
	sort.Strings(tags)
	return tags, nil
}

func containsTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

type fakeFileRepo struct {
	files     []models.UploadFile
	createErr error
}

func (r *fakeFileRepo) CreateBatch(files []models.UploadFile) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.files = append(r.files, files...)
	return nil
}

func (r *fakeFileRepo) FindByGroupID(groupID string) ([]models.UploadFile, error) {
	var out []models.UploadFile
	for _, f := range r.files {
		if f.GroupID == groupID {
			out = append(out, f)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

type fakeStorage struct {
	saved   map[string][]byte
	order   []string
	failAt  int // index of the Save call that fails, -1 for never
	calls   int
	signErr error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{saved: map[string][]byte{}, failAt: -1}
}

func (s *fakeStorage) Save(_ context.Context, path string, reader io.Reader, _ string) error {
	call := s.calls
	s.calls++
	if call == s.failAt {
		return fmt.Errorf("backend rejected write")
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	s.saved[path] = data
	s.order = append(s.order, path)
	return nil
}

func (s *fakeStorage) Get(_ context.Context, path string) (io.ReadCloser, error) {
	data, ok := s.saved[path]
	if !ok {
		return nil, fmt.Errorf("not found: %s", path)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *fakeStorage) Delete(_ context.Context, path string) error {
	delete(s.saved, path)
	return nil
}

func (s *fakeStorage) Exists(_ context.Context, path string) (bool, error) {
	_, ok := s.saved[path]
	return ok, nil
}

func (s *fakeStorage) GetSignedURL(_ context.Context, path string, _ time.Duration) (string, error) {
	if s.signErr != nil {
		return "", s.signErr
	}
	return "https://signed.example/" + path, nil
}

func (s *fakeStorage) GetSize(_ context.Context, path string) (int64, error) {
	return int64(len(s.saved[path])), nil
}

type fakeUserRepo struct {
	users    map[string]*models.User // by id
	profiles *fakeProfileRepo        // written by CreateWithProfile
	txErr    error                   // fails the registration transaction
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*models.User{}}
}

func (r *fakeUserRepo) add(id, email string) *models.User {
	u := &models.User{Email: email}
	u.ID = id
	r.users[id] = u
	return u
}

func (r *fakeUserRepo) CreateWithProfile(user *models.User, profile *models.Profile) error {
	for _, u := range r.users {
		if u.Email == strings.ToLower(strings.TrimSpace(user.Email)) {
			return repositories.ErrUserAlreadyExists
		}
	}
	// A rolled-back transaction persists nothing.
	if r.txErr != nil {
		return r.txErr
	}
	if user.ID == "" {
		user.ID = fmt.Sprintf("user-%d", len(r.users)+1)
	}
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	r.users[user.ID] = user
	profile.ID = user.ID
	if r.profiles != nil {
		r.profiles.profiles[profile.ID] = profile
	}
	return nil
}

func (r *fakeUserRepo) FindByID(id string) (*models.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) FindByEmail(email string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) ListEmails() ([]repositories.UserEmail, error) {
	var out []repositories.UserEmail
	for _, u := range r.users {
		out = append(out, repositories.UserEmail{ID: u.ID, Email: u.Email})
	}
	return out, nil
}

type fakeProfileRepo struct {
	profiles map[string]*models.Profile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: map[string]*models.Profile{}}
}

func (r *fakeProfileRepo) add(p *models.Profile) *models.Profile {
	r.profiles[p.ID] = p
	return p
}

func (r *fakeProfileRepo) FindByID(id string) (*models.Profile, error) {
	if p, ok := r.profiles[id]; ok {
		return p, nil
	}
	return nil, repositories.ErrProfileNotFound
}

func (r *fakeProfileRepo) FindByIDs(ids []string) ([]models.Profile, error) {
	var out []models.Profile
	for _, id := range ids {
		if p, ok := r.profiles[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProfileRepo) List() ([]models.Profile, error) {
	var out []models.Profile
	for _, p := range r.profiles {
		out = append(out, *p)
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].DisplayName, out[j].DisplayName
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return *a < *b
	})
	return out, nil
}

func (r *fakeProfileRepo) UpdateSelf(id string, fields map[string]interface{}) error {
	p, ok := r.profiles[id]
	if !ok {
		return repositories.ErrProfileNotFound
	}
	if v, ok := fields["display_name"]; ok {
		s := v.(string)
		p.DisplayName = &s
	}
	if v, ok := fields["subteam"]; ok {
		s := v.(string)
		p.Subteam = &s
	}
	if v, ok := fields["graduation_year"]; ok {
		y := v.(int)
		p.GraduationYear = &y
	}
	return nil
}

func (r *fakeProfileRepo) UpdateRoleStatus(id string, role models.ProfileRole, status models.ProfileStatus) error {
	p, ok := r.profiles[id]
	if !ok {
		return repositories.ErrProfileNotFound
	}
	p.Role = role
	p.Status = status
	return nil
}

type fakeRefreshTokenRepo struct {
	tokens map[string]*models.RefreshToken
}

func newFakeRefreshTokenRepo() *fakeRefreshTokenRepo {
	return &fakeRefreshTokenRepo{tokens: map[string]*models.RefreshToken{}}
}

func (r *fakeRefreshTokenRepo) Create(token *models.RefreshToken) error {
	r.tokens[token.Token] = token
	return nil
}

func (r *fakeRefreshTokenRepo) FindByToken(token string) (*models.RefreshToken, error) {
	if t, ok := r.tokens[token]; ok {
		return t, nil
	}
	return nil, repositories.ErrTokenNotFound
}

func (r *fakeRefreshTokenRepo) DeleteByToken(token string) error {
	delete(r.tokens, token)
	return nil
}

func (r *fakeRefreshTokenRepo) DeleteExpired() error {
	for k, t := range r.tokens {
		if time.Now().After(t.ExpiresAt) {
			delete(r.tokens, k)
		}
	}
	return nil
}

// strPtr is a test helper for optional string fields.
func strPtr(s string) *string { return &s }
