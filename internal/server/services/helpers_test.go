package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/skillswap/internal/common"
	"github.com/dmitrijs2005/skillswap/internal/dbx"
	"github.com/dmitrijs2005/skillswap/internal/server/models"
	profilesrepo "github.com/dmitrijs2005/skillswap/internal/server/repositories/profiles"
	refreshtokensrepo "github.com/dmitrijs2005/skillswap/internal/server/repositories/refreshtokens"
	skillsrepo "github.com/dmitrijs2005/skillswap/internal/server/repositories/skills"
	swapsrepo "github.com/dmitrijs2005/skillswap/internal/server/repositories/swaps"
	transactionsrepo "github.com/dmitrijs2005/skillswap/internal/server/repositories/transactions"
)

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

// expectTx queues Begin/Commit expectations for one successful dbx.WithTx.
func expectTx(mock sqlmock.Sqlmock) {
	mock.ExpectBegin()
	mock.ExpectCommit()
}

// expectTxRollback queues Begin/Rollback for a unit of work that fails.
func expectTxRollback(mock sqlmock.Sqlmock) {
	mock.ExpectBegin()
	mock.ExpectRollback()
}

// --- in-memory fakes ---

type fakeProfilesRepo struct {
	profiles map[string]*models.Profile

	upsertErr error
	adjustErr error
}

func newFakeProfilesRepo(profiles ...*models.Profile) *fakeProfilesRepo {
	f := &fakeProfilesRepo{profiles: map[string]*models.Profile{}}
	for _, p := range profiles {
		cp := *p
		f.profiles[p.ID] = &cp
	}
	return f
}

func (f *fakeProfilesRepo) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	p, ok := f.profiles[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProfilesRepo) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	for _, p := range f.profiles {
		if p.Email == email {
			cp := *p
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeProfilesRepo) LockByID(ctx context.Context, id string) (*models.Profile, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeProfilesRepo) Upsert(ctx context.Context, profile *models.Profile) (*models.Profile, bool, error) {
	if f.upsertErr != nil {
		return nil, false, f.upsertErr
	}
	if existing, ok := f.profiles[profile.ID]; ok {
		cp := *existing
		return &cp, false, nil
	}
	for _, p := range f.profiles {
		if p.Email == profile.Email {
			return nil, false, common.ErrorConflict
		}
	}
	cp := *profile
	f.profiles[profile.ID] = &cp
	out := cp
	return &out, true, nil
}

func (f *fakeProfilesRepo) AdjustBalance(ctx context.Context, id string, delta int64) (int64, error) {
	if f.adjustErr != nil {
		return 0, f.adjustErr
	}
	p, ok := f.profiles[id]
	if !ok {
		return 0, common.ErrorNotFound
	}
	if p.Balance+delta < 0 {
		return 0, common.ErrInsufficientCredits
	}
	p.Balance += delta
	return p.Balance, nil
}

func (f *fakeProfilesRepo) IncrementTaught(ctx context.Context, id string) error {
	if p, ok := f.profiles[id]; ok {
		p.SkillsTaught++
	}
	return nil
}

func (f *fakeProfilesRepo) IncrementLearned(ctx context.Context, id string) error {
	if p, ok := f.profiles[id]; ok {
		p.SkillsLearned++
	}
	return nil
}

func (f *fakeProfilesRepo) SetAvatarKey(ctx context.Context, id string, key string) error {
	p, ok := f.profiles[id]
	if !ok {
		return common.ErrorNotFound
	}
	p.AvatarKey = key
	return nil
}

type fakeSwapsRepo struct {
	swaps map[string]*models.Swap

	createErr error
	updateErr error
	// beforeUpdateStatus runs before the compare-and-set, letting tests
	// interleave a concurrent writer.
	beforeUpdateStatus func()
}

func newFakeSwapsRepo(swaps ...*models.Swap) *fakeSwapsRepo {
	f := &fakeSwapsRepo{swaps: map[string]*models.Swap{}}
	for _, s := range swaps {
		cp := *s
		f.swaps[s.ID] = &cp
	}
	return f
}

func (f *fakeSwapsRepo) Create(ctx context.Context, swap *models.Swap) (*models.Swap, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	cp := *swap
	f.swaps[swap.ID] = &cp
	out := cp
	return &out, nil
}

func (f *fakeSwapsRepo) GetByID(ctx context.Context, id string) (*models.Swap, error) {
	s, ok := f.swaps[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSwapsRepo) LockByID(ctx context.Context, id string) (*models.Swap, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeSwapsRepo) UpdateStatus(ctx context.Context, id string, from, to models.SwapStatus) (bool, error) {
	if f.updateErr != nil {
		return false, f.updateErr
	}
	if f.beforeUpdateStatus != nil {
		f.beforeUpdateStatus()
		f.beforeUpdateStatus = nil
	}
	s, ok := f.swaps[id]
	if !ok || s.Status != from {
		return false, nil
	}
	s.Status = to
	return true, nil
}

func (f *fakeSwapsRepo) ListByUser(ctx context.Context, userID string) ([]*models.Swap, error) {
	var out []*models.Swap
	for _, s := range f.swaps {
		if s.Participant(userID) {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeSkillsRepo struct {
	skills map[string]*models.Skill

	createErr error
}

func newFakeSkillsRepo(skills ...*models.Skill) *fakeSkillsRepo {
	f := &fakeSkillsRepo{skills: map[string]*models.Skill{}}
	for _, s := range skills {
		cp := *s
		f.skills[s.ID] = &cp
	}
	return f
}

func (f *fakeSkillsRepo) Create(ctx context.Context, skill *models.Skill) (*models.Skill, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	cp := *skill
	f.skills[skill.ID] = &cp
	out := cp
	return &out, nil
}

func (f *fakeSkillsRepo) GetByID(ctx context.Context, id string) (*models.Skill, error) {
	s, ok := f.skills[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSkillsRepo) ListActive(ctx context.Context) ([]*models.Skill, error) {
	var out []*models.Skill
	for _, s := range f.skills {
		if s.Active {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeSkillsRepo) ListByOwner(ctx context.Context, ownerID string) ([]*models.Skill, error) {
	var out []*models.Skill
	for _, s := range f.skills {
		if s.OwnerID == ownerID {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeSkillsRepo) SetActive(ctx context.Context, id string, ownerID string, active bool) error {
	s, ok := f.skills[id]
	if !ok || s.OwnerID != ownerID {
		return common.ErrorNotFound
	}
	s.Active = active
	return nil
}

type fakeTransactionsRepo struct {
	entries []*models.Transaction

	createErr error
}

func (f *fakeTransactionsRepo) Create(ctx context.Context, tx *models.Transaction) (*models.Transaction, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if tx.Kind == models.TxSignupBonus {
		for _, e := range f.entries {
			if e.Kind == models.TxSignupBonus && e.ToUserID == tx.ToUserID {
				return nil, common.ErrorConflict
			}
		}
	}
	cp := *tx
	cp.CreatedAt = time.Now()
	f.entries = append(f.entries, &cp)
	out := cp
	return &out, nil
}

func (f *fakeTransactionsRepo) ListByUser(ctx context.Context, userID string) ([]*models.Transaction, error) {
	var out []*models.Transaction
	for _, e := range f.entries {
		if e.FromUserID == userID || e.ToUserID == userID {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeTransactionsRepo) byKind(kind models.TransactionKind) []*models.Transaction {
	var out []*models.Transaction
	for _, e := range f.entries {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

type fakeRefreshRepo struct {
	tokens map[string]*models.RefreshToken

	findErr   error
	delErr    error
	createErr error
}

func newFakeRefreshRepo() *fakeRefreshRepo {
	return &fakeRefreshRepo{tokens: map[string]*models.RefreshToken{}}
}

func (f *fakeRefreshRepo) Create(ctx context.Context, userID string, token string, validity time.Duration) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.tokens[token] = &models.RefreshToken{Token: token, UserID: userID, Expires: time.Now().Add(validity)}
	return nil
}

func (f *fakeRefreshRepo) Find(ctx context.Context, token string) (*models.RefreshToken, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	t, ok := f.tokens[token]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return t, nil
}

func (f *fakeRefreshRepo) Delete(ctx context.Context, token string) error {
	if f.delErr != nil {
		return f.delErr
	}
	delete(f.tokens, token)
	return nil
}

type fakeRepoManager struct {
	p  *fakeProfilesRepo
	sk *fakeSkillsRepo
	sw *fakeSwapsRepo
	tx *fakeTransactionsRepo
	rt *fakeRefreshRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		p:  newFakeProfilesRepo(),
		sk: newFakeSkillsRepo(),
		sw: newFakeSwapsRepo(),
		tx: &fakeTransactionsRepo{},
		rt: newFakeRefreshRepo(),
	}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Profiles(db dbx.DBTX) profilesrepo.Repository { return m.p }
func (m *fakeRepoManager) Skills(db dbx.DBTX) skillsrepo.Repository     { return m.sk }
func (m *fakeRepoManager) Swaps(db dbx.DBTX) swapsrepo.Repository       { return m.sw }
func (m *fakeRepoManager) Transactions(db dbx.DBTX) transactionsrepo.Repository {
	return m.tx
}
func (m *fakeRepoManager) RefreshTokens(db dbx.DBTX) refreshtokensrepo.Repository {
	return m.rt
}
