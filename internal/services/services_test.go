package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sintocheck/sintocheck-api/auth"
	"github.com/sintocheck/sintocheck-api/internal/apperr"
	"github.com/sintocheck/sintocheck-api/internal/config"
	"github.com/sintocheck/sintocheck-api/internal/db"
	"github.com/sintocheck/sintocheck-api/internal/enrollment"
	"github.com/sintocheck/sintocheck-api/internal/models"
	"github.com/sintocheck/sintocheck-api/internal/store"
)

// plainHasher keeps tests fast; bcrypt has its own test.
type plainHasher struct{}

func (plainHasher) Hash(raw string) (string, error) { return "h:" + raw, nil }
func (plainHasher) Compare(hash, raw string) error {
	if hash != "h:"+raw {
		return errors.New("mismatch")
	}
	return nil
}

func setupStore(t *testing.T) *store.Gorm {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file:"+strings.ReplaceAll(t.Name(), "/", "_")+"?mode=memory&cache=shared"), db.GormConfig(false))
	require.NoError(t, err)
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, db.Migrate(conn))
	return store.NewGorm(conn, 5*time.Second)
}

func newSigner(t *testing.T) *auth.JWTSigner {
	t.Helper()
	s, err := auth.NewJWTSigner("test-secret-0123456789", 0)
	require.NoError(t, err)
	return s
}

func newCredentials(t *testing.T, s *store.Gorm, phoneUnique bool) *Credentials {
	return NewCredentials(s, plainHasher{}, newSigner(t), enrollment.NewGenerator(nil, s.DoctorCodeExists), phoneUnique)
}

func signupPatient(t *testing.T, c *Credentials, phone string) *models.Patient {
	t.Helper()
	p, err := c.RegisterPatient(context.Background(), "", PatientSignup{Name: "Pat", Phone: phone, Password: "secret"})
	require.NoError(t, err)
	return p
}

func assertKind(t *testing.T, want apperr.Kind, err error) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, want, apperr.KindOf(err), err.Error())
}

func TestBcryptHasher(t *testing.T) {
	h := BcryptHasher{Cost: 4}
	hash, err := h.Hash("secret")
	require.NoError(t, err)
	assert.NotEqual(t, "secret", hash)
	assert.NoError(t, h.Compare(hash, "secret"))
	assert.Error(t, h.Compare(hash, "Secret"))
}

func TestCredentials_RegisterThenLogin(t *testing.T) {
	s := setupStore(t)
	c := newCredentials(t, s, true)
	ctx := context.Background()

	for i, pw := range []string{"secret", "p@ss w0rd", "ñandú"} {
		phone := fmt.Sprintf("600-%d", i)
		p, err := c.RegisterPatient(ctx, "", PatientSignup{Name: "Pat", Phone: phone, Password: pw})
		require.NoError(t, err)
		assert.NotEqual(t, pw, p.Password)

		sess, err := c.LoginPatient(ctx, "", Login{Phone: phone, Password: pw})
		require.NoError(t, err)
		assert.Equal(t, p.ID, sess.ID)

		claims, err := c.signer.(*auth.JWTSigner).Verify(sess.Token)
		require.NoError(t, err)
		assert.Equal(t, p.ID, claims.ID)

		_, err = c.LoginPatient(ctx, "", Login{Phone: phone, Password: pw + "x"})
		assertKind(t, apperr.KindAuthenticationFailed, err)
	}

	_, err := c.LoginPatient(ctx, "", Login{Phone: "unknown", Password: "secret"})
	assertKind(t, apperr.KindAuthenticationFailed, err)
}

func TestCredentials_DuplicatePhone(t *testing.T) {
	s := setupStore(t)
	c := newCredentials(t, s, true)
	signupPatient(t, c, "555")

	_, err := c.RegisterPatient(context.Background(), "", PatientSignup{Name: "Other", Phone: "555", Password: "x"})
	assertKind(t, apperr.KindConflict, err)
	assert.Equal(t, MsgPhoneRegistered, apperr.As(err).Message)
}

func TestCredentials_RegisterValidates(t *testing.T) {
	c := newCredentials(t, setupStore(t), true)
	_, err := c.RegisterPatient(context.Background(), "", PatientSignup{Phone: "555"})
	assertKind(t, apperr.KindBadRequest, err)
}

func TestCredentials_DoctorPhonePolicy(t *testing.T) {
	ctx := context.Background()
	in := DoctorSignup{Name: "Dr", Phone: "777", Password: "pw"}

	strict := newCredentials(t, setupStore(t), true)
	_, err := strict.RegisterDoctor(ctx, "", in)
	require.NoError(t, err)
	_, err = strict.RegisterDoctor(ctx, "", in)
	assertKind(t, apperr.KindConflict, err)

	t.Run("lenient", func(t *testing.T) {
		lenient := newCredentials(t, setupStore(t), false)
		a, err := lenient.RegisterDoctor(ctx, "", in)
		require.NoError(t, err)
		b, err := lenient.RegisterDoctor(ctx, "", in)
		require.NoError(t, err)
		assert.NotEqual(t, a.Code, b.Code)
	})
}

// fixedRand replays vals in a loop.
type fixedRand struct {
	mu   sync.Mutex
	vals []int
	i    int
}

func (f *fixedRand) Intn(n int) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	v := f.vals[f.i%len(f.vals)]
	f.i++
	return v % n
}

func TestCredentials_DoctorCodeRetriesOnInsertConflict(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	first := &models.Doctor{Name: "A", Phone: "1", Password: "h", Code: "AAAAAA"}
	require.NoError(t, s.CreateDoctor(ctx, first))

	// The existence check never sees a collision, so only the unique index
	// catches the first draw.
	var vals []int
	for i := 0; i < enrollment.Length; i++ {
		vals = append(vals, 0)
	}
	for i := 0; i < enrollment.Length; i++ {
		vals = append(vals, 1)
	}
	gen := enrollment.NewGenerator(&fixedRand{vals: vals}, func(context.Context, string) (bool, error) { return false, nil })
	c := NewCredentials(s, plainHasher{}, newSigner(t), gen, false)

	d, err := c.RegisterDoctor(ctx, "", DoctorSignup{Name: "B", Phone: "2", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "BBBBBB", d.Code)
}

func TestHealthData_RoundTrip(t *testing.T) {
	s := setupStore(t)
	c := newCredentials(t, s, true)
	hd := NewHealthDataService(s)
	ctx := context.Background()
	p := signupPatient(t, c, "555")

	lo, hi, unit := 40.0, 200.0, "kg"
	_, err := hd.Create(ctx, p.ID, NewHealthData{Name: "Weight", Quantitative: true, PatientID: p.ID, RangeMin: &lo, RangeMax: &hi, Unit: &unit})
	require.NoError(t, err)

	list, err := hd.Personalized(ctx, p.ID, p.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	got := list[0]
	assert.Equal(t, "Weight", got.Name)
	assert.True(t, got.Quantitative)
	assert.Equal(t, 40.0, *got.RangeMin)
	assert.Equal(t, 200.0, *got.RangeMax)
	assert.Equal(t, "kg", *got.Unit)
	assert.True(t, got.Tracked)
	assert.Equal(t, p.ID, *got.PatientID)
}

func TestHealthData_DuplicateName(t *testing.T) {
	s := setupStore(t)
	c := newCredentials(t, s, true)
	hd := NewHealthDataService(s)
	ctx := context.Background()
	p := signupPatient(t, c, "555")
	q := signupPatient(t, c, "666")

	_, err := hd.Create(ctx, p.ID, NewHealthData{Name: "Mood", PatientID: p.ID})
	require.NoError(t, err)
	_, err = hd.Create(ctx, p.ID, NewHealthData{Name: "Mood", PatientID: p.ID})
	assertKind(t, apperr.KindConflict, err)
	assert.Equal(t, MsgHealthDataExists, apperr.As(err).Message)

	_, err = hd.Create(ctx, q.ID, NewHealthData{Name: "Mood", PatientID: q.ID})
	assert.NoError(t, err)
}

func TestHealthData_ConcurrentCreateOneWins(t *testing.T) {
	s := setupStore(t)
	c := newCredentials(t, s, true)
	hd := NewHealthDataService(s)
	p := signupPatient(t, c, "555")

	const n = 8
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = hd.Create(context.Background(), p.ID, NewHealthData{Name: "Sleep", PatientID: p.ID})
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.Equal(t, apperr.KindConflict, apperr.KindOf(err), err.Error())
	}
	assert.Equal(t, 1, ok)

	list, err := hd.Personalized(context.Background(), p.ID, p.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestHealthData_RangeOrder(t *testing.T) {
	s := setupStore(t)
	hd := NewHealthDataService(s)
	p := signupPatient(t, newCredentials(t, s, true), "555")
	lo, hi := 10.0, 5.0

	_, err := hd.Create(context.Background(), p.ID, NewHealthData{Name: "X", PatientID: p.ID, RangeMin: &lo, RangeMax: &hi})
	assertKind(t, apperr.KindBadRequest, err)
}

func TestHealthData_Update(t *testing.T) {
	s := setupStore(t)
	hd := NewHealthDataService(s)
	ctx := context.Background()
	p := signupPatient(t, newCredentials(t, s, true), "555")

	mood, err := hd.Create(ctx, p.ID, NewHealthData{Name: "Mood", PatientID: p.ID})
	require.NoError(t, err)
	_, err = hd.Create(ctx, p.ID, NewHealthData{Name: "Sleep", PatientID: p.ID})
	require.NoError(t, err)

	same, unit := "Mood", "pts"
	got, err := hd.Update(ctx, p.ID, HealthDataUpdate{ID: mood.ID, Changes: models.HealthDataChanges{Name: &same, Unit: &unit}})
	require.NoError(t, err, "renaming to its own name is not a conflict")
	assert.Equal(t, "pts", *got.Unit)
	assert.True(t, got.Tracked)

	taken := "Sleep"
	_, err = hd.Update(ctx, p.ID, HealthDataUpdate{ID: mood.ID, Changes: models.HealthDataChanges{Name: &taken}})
	assertKind(t, apperr.KindConflict, err)

	_, err = hd.Update(ctx, p.ID, HealthDataUpdate{ID: "missing"})
	assertKind(t, apperr.KindNotFound, err)
}

func TestHealthData_TrackUntrackIdempotent(t *testing.T) {
	s := setupStore(t)
	hd := NewHealthDataService(s)
	ctx := context.Background()
	p := signupPatient(t, newCredentials(t, s, true), "555")
	h, err := hd.Create(ctx, p.ID, NewHealthData{Name: "Mood", PatientID: p.ID})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		got, err := hd.Untrack(ctx, p.ID, h.ID)
		require.NoError(t, err)
		assert.False(t, got.Tracked)
		assert.Equal(t, "Mood", got.Name)
	}
	tracked, err := hd.Tracked(ctx, p.ID, p.ID)
	require.NoError(t, err)
	assert.Empty(t, tracked)

	for i := 0; i < 2; i++ {
		got, err := hd.Track(ctx, p.ID, h.ID)
		require.NoError(t, err)
		assert.True(t, got.Tracked)
	}
	tracked, err = hd.Tracked(ctx, p.ID, p.ID)
	require.NoError(t, err)
	assert.Len(t, tracked, 1)
}

func TestHealthData_Delete(t *testing.T) {
	s := setupStore(t)
	hd := NewHealthDataService(s)
	ctx := context.Background()
	p := signupPatient(t, newCredentials(t, s, true), "555")

	global := &models.HealthData{Name: "Weight"}
	require.NoError(t, s.CreateHealthData(ctx, global))
	_, err := hd.Delete(ctx, p.ID, global.ID)
	assertKind(t, apperr.KindBadRequest, err)

	catalog, err := hd.Catalog(ctx, p.ID, struct{}{})
	require.NoError(t, err)
	assert.Len(t, catalog, 1)

	own, err := hd.Create(ctx, p.ID, NewHealthData{Name: "Mood", PatientID: p.ID})
	require.NoError(t, err)
	_, err = hd.Delete(ctx, p.ID, own.ID)
	require.NoError(t, err)
	_, err = hd.Delete(ctx, p.ID, own.ID)
	assertKind(t, apperr.KindNotFound, err)
}

func TestRecords_OrderAndOwnership(t *testing.T) {
	s := setupStore(t)
	c := newCredentials(t, s, true)
	hd := NewHealthDataService(s)
	rs := NewRecords(s)
	ctx := context.Background()
	p := signupPatient(t, c, "555")
	q := signupPatient(t, c, "666")
	h, err := hd.Create(ctx, p.ID, NewHealthData{Name: "Mood", PatientID: p.ID})
	require.NoError(t, err)

	var ids []string
	for _, v := range []Measurement{"1", "2", "3"} {
		r, err := rs.Create(ctx, p.ID, NewRecord{PatientID: p.ID, HealthDataID: h.ID, Value: v})
		require.NoError(t, err)
		ids = append(ids, r.ID)
		time.Sleep(2 * time.Millisecond)
	}

	page, err := rs.List(ctx, p.ID, RecordQuery{PatientID: p.ID, HealthDataID: h.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, store.DefaultPageLimit, page.Limit)
	require.Len(t, page.Items, 3)
	for i, r := range page.Items {
		assert.Equal(t, ids[i], r.ID)
	}

	_, err = rs.Create(ctx, q.ID, NewRecord{PatientID: q.ID, HealthDataID: h.ID, Value: "9"})
	assertKind(t, apperr.KindForbidden, err)

	_, err = rs.Create(ctx, p.ID, NewRecord{PatientID: p.ID, HealthDataID: "missing", Value: "9"})
	assertKind(t, apperr.KindNotFound, err)

	got, err := rs.Get(ctx, p.ID, ids[0])
	require.NoError(t, err)
	assert.Equal(t, "1", got.Value)
}

func TestMeasurement_AcceptsNumbersAndText(t *testing.T) {
	var m Measurement
	require.NoError(t, m.UnmarshalJSON([]byte(`72.5`)))
	assert.Equal(t, Measurement("72.5"), m)
	require.NoError(t, m.UnmarshalJSON([]byte(`"120/80"`)))
	assert.Equal(t, Measurement("120/80"), m)
	assert.Error(t, m.UnmarshalJSON([]byte(`{}`)))
}

func TestNotes(t *testing.T) {
	s := setupStore(t)
	ns := NewNotes(s)
	ctx := context.Background()
	p := signupPatient(t, newCredentials(t, s, true), "555")

	n, err := ns.Create(ctx, p.ID, NewNote{Title: "Dizzy", Content: "after lunch", PatientID: p.ID})
	require.NoError(t, err)
	list, err := ns.List(ctx, p.ID, p.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = ns.Create(ctx, p.ID, NewNote{PatientID: p.ID})
	assertKind(t, apperr.KindBadRequest, err)

	_, err = ns.Delete(ctx, p.ID, n.ID)
	require.NoError(t, err)
	_, err = ns.Delete(ctx, p.ID, n.ID)
	assertKind(t, apperr.KindNotFound, err)
}

func TestRelationships_LinkUnlinkRelink(t *testing.T) {
	s := setupStore(t)
	c := newCredentials(t, s, true)
	rel := NewRelationships(s)
	ctx := context.Background()
	p := signupPatient(t, c, "555")
	d, err := c.RegisterDoctor(ctx, "", DoctorSignup{Name: "Dr", Phone: "777", Password: "pw"})
	require.NoError(t, err)

	patientsOf := func() []models.Patient {
		out, err := rel.PatientsOf(ctx, "", d.ID)
		require.NoError(t, err)
		return out
	}

	for i := 0; i < 2; i++ {
		got, err := rel.LinkByCode(ctx, p.ID, Link{DoctorCode: d.Code, PatientID: p.ID})
		require.NoError(t, err)
		assert.Equal(t, d.ID, got.ID)
	}
	require.Len(t, patientsOf(), 1)
	assert.Equal(t, p.ID, patientsOf()[0].ID)

	doctors, err := rel.DoctorsOf(ctx, p.ID, p.ID)
	require.NoError(t, err)
	require.Len(t, doctors, 1)

	_, err = rel.Unlink(ctx, p.ID, Unlink{DoctorID: d.ID, PatientID: p.ID})
	require.NoError(t, err)
	assert.Empty(t, patientsOf())

	_, err = rel.LinkByCode(ctx, p.ID, Link{DoctorCode: " " + strings.ToLower(d.Code) + " ", PatientID: p.ID})
	require.NoError(t, err)
	assert.Len(t, patientsOf(), 1)
}

func TestRelationships_UnknownDoctor(t *testing.T) {
	s := setupStore(t)
	rel := NewRelationships(s)
	ctx := context.Background()
	p := signupPatient(t, newCredentials(t, s, true), "555")

	_, err := rel.LinkByCode(ctx, p.ID, Link{DoctorCode: "ZZZZZZ", PatientID: p.ID})
	assertKind(t, apperr.KindNotFound, err)
	assert.Equal(t, MsgDoctorNotFound, apperr.As(err).Message)

	for _, code := range []string{"", "ABC", "ABCDEFG", "AB-CD1"} {
		_, err = rel.LinkByCode(ctx, p.ID, Link{DoctorCode: code, PatientID: p.ID})
		assertKind(t, apperr.KindNotFound, err)
	}

	_, err = rel.Unlink(ctx, p.ID, Unlink{DoctorID: "missing", PatientID: p.ID})
	assertKind(t, apperr.KindNotFound, err)
}

func TestAccounts_UpdatePatient(t *testing.T) {
	s := setupStore(t)
	c := newCredentials(t, s, true)
	acc := NewAccounts(s, config.DoctorDeletionDisabled)
	ctx := context.Background()
	p := signupPatient(t, c, "555")
	signupPatient(t, c, "666")

	name, own, taken := "Renamed", "555", "666"
	got, err := acc.UpdatePatient(ctx, p.ID, PatientUpdate{ID: p.ID, Changes: models.PatientChanges{Name: &name, Phone: &own}})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)

	_, err = acc.UpdatePatient(ctx, p.ID, PatientUpdate{ID: p.ID, Changes: models.PatientChanges{Phone: &taken}})
	assertKind(t, apperr.KindConflict, err)
}

func TestAccounts_DeletePatientCascades(t *testing.T) {
	s := setupStore(t)
	acc := NewAccounts(s, config.DoctorDeletionDisabled)
	hd := NewHealthDataService(s)
	ctx := context.Background()
	p := signupPatient(t, newCredentials(t, s, true), "555")
	_, err := hd.Create(ctx, p.ID, NewHealthData{Name: "Mood", PatientID: p.ID})
	require.NoError(t, err)

	_, err = acc.DeletePatient(ctx, p.ID, p.ID)
	require.NoError(t, err)
	list, err := hd.Personalized(ctx, p.ID, p.ID)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = acc.GetPatient(ctx, p.ID, p.ID)
	assertKind(t, apperr.KindNotFound, err)
}

func TestAccounts_DoctorDeletionPolicy(t *testing.T) {
	s := setupStore(t)
	c := newCredentials(t, s, true)
	ctx := context.Background()
	d, err := c.RegisterDoctor(ctx, "", DoctorSignup{Name: "Dr", Phone: "777", Password: "pw"})
	require.NoError(t, err)

	_, err = NewAccounts(s, config.DoctorDeletionDisabled).DeleteDoctor(ctx, "", d.ID)
	assertKind(t, apperr.KindForbidden, err)

	open := NewAccounts(s, config.DoctorDeletionOpen)
	_, err = open.DeleteDoctor(ctx, "", d.ID)
	require.NoError(t, err)
	_, err = open.DeleteDoctor(ctx, "", d.ID)
	assertKind(t, apperr.KindNotFound, err)
}

func TestAccounts_Image(t *testing.T) {
	s := setupStore(t)
	acc := NewAccounts(s, config.DoctorDeletionDisabled)
	ctx := context.Background()
	p := signupPatient(t, newCredentials(t, s, true), "555")

	img, err := acc.GetImage(ctx, p.ID, p.ID)
	require.NoError(t, err)
	assert.Nil(t, img)

	_, err = acc.SetImage(ctx, p.ID, ImageRef{PatientID: p.ID})
	assertKind(t, apperr.KindBadRequest, err)

	_, err = acc.SetImage(ctx, p.ID, ImageRef{PatientID: p.ID, URL: "https://img.example/p.png", Filename: "p"})
	require.NoError(t, err)
	img, err = acc.GetImage(ctx, p.ID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://img.example/p.png", img.URL)
}
