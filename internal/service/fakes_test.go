package service

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"time"

	"github.com/sakif/mood-lantern/internal/apperror"
	"github.com/sakif/mood-lantern/internal/model"
)

// =========================================================================
// FAKES
// =========================================================================
//
// Hand-written in-memory repositories. Each one has an error field that,
// when set, is returned from every method to simulate a storage failure.

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fixedClock always returns t.
func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

func mustDate(s string) time.Time {
	d, err := time.Parse(model.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return d
}

// scriptedRand returns the queued values in order (each taken modulo n) and
// then keeps returning 0.
type scriptedRand struct {
	values []int
}

func (r *scriptedRand) IntN(n int) int {
	if len(r.values) == 0 {
		return 0
	}
	v := r.values[0]
	r.values = r.values[1:]
	return v % n
}

// --- users ---

type fakeUserRepo struct {
	byID   map[string]*model.User
	nextID int
	err    error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: make(map[string]*model.User)}
}

// add stores a user directly and returns its ID.
func (f *fakeUserRepo) add(email string) string {
	u := &model.User{Name: "User", Email: email}
	if err := f.CreateUser(context.Background(), u); err != nil {
		panic(err)
	}
	return u.ID
}

func (f *fakeUserRepo) CreateUser(ctx context.Context, user *model.User) error {
	if f.err != nil {
		return f.err
	}
	for _, u := range f.byID {
		if u.Email == user.Email {
			return apperror.Conflict("user", user.Email)
		}
	}
	f.nextID++
	user.ID = "user-" + strconv.Itoa(f.nextID)
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	copied := *user
	f.byID[user.ID] = &copied
	return nil
}

func (f *fakeUserRepo) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.byID[id]
	if !ok {
		return nil, apperror.NotFound("user", id)
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.byID {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, apperror.NotFound("user", email)
}

// --- check-ins ---

type fakeCheckInRepo struct {
	records map[string]*model.CheckIn // keyed by userID + "|" + date
	saves   int
	err     error
}

func newFakeCheckInRepo() *fakeCheckInRepo {
	return &fakeCheckInRepo{records: make(map[string]*model.CheckIn)}
}

func checkInKey(userID string, date time.Time) string {
	return userID + "|" + date.Format(model.DateLayout)
}

func (f *fakeCheckInRepo) SaveCheckIn(ctx context.Context, c *model.CheckIn, answers []model.Answer) error {
	if f.err != nil {
		return f.err
	}
	f.saves++

	key := checkInKey(c.UserID, c.Date)
	if existing, ok := f.records[key]; ok {
		c.ID = existing.ID
		c.CreatedAt = existing.CreatedAt
	} else {
		c.ID = "checkin-" + strconv.Itoa(len(f.records)+1)
		c.CreatedAt = time.Now()
	}
	c.UpdatedAt = time.Now()

	c.Answers = make([]model.DailyAnswer, len(answers))
	for i, a := range answers {
		c.Answers[i] = model.DailyAnswer{
			ID:         c.ID + "-a" + strconv.Itoa(i),
			CheckInID:  c.ID,
			QuestionID: a.QuestionID,
			Choice:     a.Choice,
		}
	}

	copied := *c
	f.records[key] = &copied
	return nil
}

func (f *fakeCheckInRepo) FindCheckIn(ctx context.Context, userID string, date time.Time) (*model.CheckIn, error) {
	if f.err != nil {
		return nil, f.err
	}
	c, ok := f.records[checkInKey(userID, date)]
	if !ok {
		return nil, apperror.NotFound("check-in", date.Format(model.DateLayout))
	}
	copied := *c
	return &copied, nil
}

func (f *fakeCheckInRepo) ListCheckIns(ctx context.Context, userID string, from, to time.Time) ([]model.CheckIn, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []model.CheckIn
	for _, c := range f.records {
		if c.UserID == userID && !c.Date.Before(from) && !c.Date.After(to) {
			copied := *c
			copied.Answers = nil
			out = append(out, copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

// seed stores a record with the given color directly.
func (f *fakeCheckInRepo) seed(userID, date string, color model.Color) {
	c := &model.CheckIn{UserID: userID, Date: mustDate(date), Color: color}
	if err := f.SaveCheckIn(context.Background(), c, nil); err != nil {
		panic(err)
	}
}

// --- catalog ---

type fakeCatalog struct {
	questions       map[int64][]model.Question
	recommendations []model.Recommendation
	err             error
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		questions: map[int64][]model.Question{
			1: {{ID: 1, CategoryID: 1, Text: "Sleep?"}, {ID: 2, CategoryID: 1, Text: "Rested?"}},
			2: {{ID: 3, CategoryID: 2, Text: "Appetite?"}},
			3: {{ID: 4, CategoryID: 3, Text: "Energy?"}, {ID: 5, CategoryID: 3, Text: "Focus?"}},
		},
		recommendations: []model.Recommendation{
			{ID: 11, Color: model.ColorStorm, Action: "Rest"},
			{ID: 31, Color: model.ColorCloud, Action: "Stretch"},
			{ID: 32, Color: model.ColorCloud, Action: "Tidy"},
			{ID: 33, Color: model.ColorCloud, Action: "Music"},
			{ID: 51, Color: model.ColorRainbow, Action: "Share"},
		},
	}
}

func (f *fakeCatalog) ListQuestionsByCategory(ctx context.Context) (map[int64][]model.Question, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.questions, nil
}

func (f *fakeCatalog) MissingQuestionIDs(ctx context.Context, ids []int64) ([]int64, error) {
	if f.err != nil {
		return nil, f.err
	}
	known := map[int64]bool{}
	for _, qs := range f.questions {
		for _, q := range qs {
			known[q.ID] = true
		}
	}
	var missing []int64
	for _, id := range ids {
		if !known[id] {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

func (f *fakeCatalog) ListRecommendations(ctx context.Context, color model.Color) ([]model.Recommendation, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []model.Recommendation
	for _, r := range f.recommendations {
		if r.Color == color {
			out = append(out, r)
		}
	}
	return out, nil
}

// --- lanterns ---

type fakeLanternRepo struct {
	lanterns []model.Lantern
	err      error
}

func (f *fakeLanternRepo) CreateLantern(ctx context.Context, l *model.Lantern) error {
	if f.err != nil {
		return f.err
	}
	l.ID = "lantern-" + strconv.Itoa(len(f.lanterns)+1)
	f.lanterns = append(f.lanterns, *l)
	return nil
}

func (f *fakeLanternRepo) ListLanterns(ctx context.Context, userID string, limit int) ([]model.Lantern, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []model.Lantern
	for i := len(f.lanterns) - 1; i >= 0 && (limit <= 0 || len(out) < limit); i-- {
		if f.lanterns[i].UserID == userID {
			out = append(out, f.lanterns[i])
		}
	}
	return out, nil
}
