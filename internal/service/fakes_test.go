package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/sakif/starwars-api/internal/apperror"
	"github.com/sakif/starwars-api/internal/model"
)

// =========================================================================
// FAKE STORE
// =========================================================================
//
// fakeStore is an in-memory stand-in for sqlite.DB. Like the real thing, one
// value implements every repository interface, enforces unique names and
// cascades deletes into the favorite maps. Set failWith to simulate a
// database outage.

type favKey struct {
	kind model.FavoriteKind
	id   int64
}

type fakeStore struct {
	nextID     int64
	users      map[int64]model.User
	planets    map[int64]model.Planet
	characters map[int64]model.Character
	vehicles   map[int64]model.Vehicle
	favorites  map[favKey]model.FavoriteRecord

	failWith error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:      make(map[int64]model.User),
		planets:    make(map[int64]model.Planet),
		characters: make(map[int64]model.Character),
		vehicles:   make(map[int64]model.Vehicle),
		favorites:  make(map[favKey]model.FavoriteRecord),
	}
}

var errDatabaseDown = errors.New("fake: database is down")

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (f *fakeStore) id() int64 {
	f.nextID++
	return f.nextID
}

func sortedKeys[V any](m map[int64]V) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func (f *fakeStore) cascade(match func(model.FavoriteRecord) bool) {
	for k, fav := range f.favorites {
		if match(fav) {
			delete(f.favorites, k)
		}
	}
}

// ===== users =====

func (f *fakeStore) ListUsers(context.Context) ([]model.User, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	out := make([]model.User, 0, len(f.users))
	for _, k := range sortedKeys(f.users) {
		out = append(out, f.users[k])
	}
	return out, nil
}

func (f *fakeStore) GetUser(_ context.Context, id int64) (*model.User, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	u, ok := f.users[id]
	if !ok {
		return nil, apperror.NotFound("user", fmt.Sprint(id))
	}
	return &u, nil
}

func (f *fakeStore) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	for _, u := range f.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, apperror.NotFoundMessage("user does not exist")
}

func (f *fakeStore) userConflict(u *model.User) error {
	for _, other := range f.users {
		if other.ID == u.ID {
			continue
		}
		if other.Email == u.Email {
			return apperror.Conflict("user", "email")
		}
		if other.Username == u.Username {
			return apperror.Conflict("user", "username")
		}
	}
	return nil
}

func (f *fakeStore) CreateUser(_ context.Context, u *model.User) error {
	if f.failWith != nil {
		return f.failWith
	}
	if err := f.userConflict(u); err != nil {
		return err
	}
	u.ID = f.id()
	f.users[u.ID] = *u
	return nil
}

func (f *fakeStore) UpdateUser(_ context.Context, u *model.User) error {
	if _, ok := f.users[u.ID]; !ok {
		return apperror.NotFound("user", fmt.Sprint(u.ID))
	}
	if err := f.userConflict(u); err != nil {
		return err
	}
	f.users[u.ID] = *u
	return nil
}

func (f *fakeStore) DeleteUser(_ context.Context, id int64) error {
	if _, ok := f.users[id]; !ok {
		return apperror.NotFound("user", fmt.Sprint(id))
	}
	delete(f.users, id)
	f.cascade(func(r model.FavoriteRecord) bool { return r.UserID == id })
	return nil
}

// ===== planets =====

func (f *fakeStore) ListPlanets(context.Context) ([]model.Planet, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	out := make([]model.Planet, 0, len(f.planets))
	for _, k := range sortedKeys(f.planets) {
		out = append(out, f.planets[k])
	}
	return out, nil
}

func (f *fakeStore) GetPlanet(_ context.Context, id int64) (*model.Planet, error) {
	p, ok := f.planets[id]
	if !ok {
		return nil, apperror.NotFound("planet", fmt.Sprint(id))
	}
	return &p, nil
}

func (f *fakeStore) planetConflict(p *model.Planet) error {
	for _, other := range f.planets {
		if other.ID != p.ID && other.Name == p.Name {
			return apperror.Conflict("planet", "name")
		}
	}
	return nil
}

func (f *fakeStore) CreatePlanet(_ context.Context, p *model.Planet) error {
	if f.failWith != nil {
		return f.failWith
	}
	if err := f.planetConflict(p); err != nil {
		return err
	}
	p.ID = f.id()
	f.planets[p.ID] = *p
	return nil
}

func (f *fakeStore) UpdatePlanet(_ context.Context, p *model.Planet) error {
	if _, ok := f.planets[p.ID]; !ok {
		return apperror.NotFound("planet", fmt.Sprint(p.ID))
	}
	if err := f.planetConflict(p); err != nil {
		return err
	}
	f.planets[p.ID] = *p
	return nil
}

func (f *fakeStore) DeletePlanet(_ context.Context, id int64) error {
	if _, ok := f.planets[id]; !ok {
		return apperror.NotFound("planet", fmt.Sprint(id))
	}
	delete(f.planets, id)
	f.cascade(func(r model.FavoriteRecord) bool { return r.Kind == model.FavoritePlanet && r.TargetID == id })
	return nil
}

// ===== characters =====

func (f *fakeStore) ListCharacters(context.Context) ([]model.Character, error) {
	out := make([]model.Character, 0, len(f.characters))
	for _, k := range sortedKeys(f.characters) {
		out = append(out, f.characters[k])
	}
	return out, nil
}

func (f *fakeStore) GetCharacter(_ context.Context, id int64) (*model.Character, error) {
	c, ok := f.characters[id]
	if !ok {
		return nil, apperror.NotFound("character", fmt.Sprint(id))
	}
	return &c, nil
}

func (f *fakeStore) characterConflict(c *model.Character) error {
	for _, other := range f.characters {
		if other.ID != c.ID && other.Name == c.Name {
			return apperror.Conflict("character", "name")
		}
	}
	return nil
}

func (f *fakeStore) CreateCharacter(_ context.Context, c *model.Character) error {
	if err := f.characterConflict(c); err != nil {
		return err
	}
	c.ID = f.id()
	f.characters[c.ID] = *c
	return nil
}

func (f *fakeStore) UpdateCharacter(_ context.Context, c *model.Character) error {
	if _, ok := f.characters[c.ID]; !ok {
		return apperror.NotFound("character", fmt.Sprint(c.ID))
	}
	if err := f.characterConflict(c); err != nil {
		return err
	}
	f.characters[c.ID] = *c
	return nil
}

func (f *fakeStore) DeleteCharacter(_ context.Context, id int64) error {
	if _, ok := f.characters[id]; !ok {
		return apperror.NotFound("character", fmt.Sprint(id))
	}
	delete(f.characters, id)
	f.cascade(func(r model.FavoriteRecord) bool { return r.Kind == model.FavoriteCharacter && r.TargetID == id })
	return nil
}

// ===== vehicles =====

func (f *fakeStore) ListVehicles(context.Context) ([]model.Vehicle, error) {
	out := make([]model.Vehicle, 0, len(f.vehicles))
	for _, k := range sortedKeys(f.vehicles) {
		out = append(out, f.vehicles[k])
	}
	return out, nil
}

func (f *fakeStore) GetVehicle(_ context.Context, id int64) (*model.Vehicle, error) {
	v, ok := f.vehicles[id]
	if !ok {
		return nil, apperror.NotFound("vehicle", fmt.Sprint(id))
	}
	return &v, nil
}

func (f *fakeStore) vehicleConflict(v *model.Vehicle) error {
	for _, other := range f.vehicles {
		if other.ID != v.ID && other.Name == v.Name {
			return apperror.Conflict("vehicle", "name")
		}
	}
	return nil
}

func (f *fakeStore) CreateVehicle(_ context.Context, v *model.Vehicle) error {
	if err := f.vehicleConflict(v); err != nil {
		return err
	}
	v.ID = f.id()
	f.vehicles[v.ID] = *v
	return nil
}

func (f *fakeStore) UpdateVehicle(_ context.Context, v *model.Vehicle) error {
	if _, ok := f.vehicles[v.ID]; !ok {
		return apperror.NotFound("vehicle", fmt.Sprint(v.ID))
	}
	if err := f.vehicleConflict(v); err != nil {
		return err
	}
	f.vehicles[v.ID] = *v
	return nil
}

func (f *fakeStore) DeleteVehicle(_ context.Context, id int64) error {
	if _, ok := f.vehicles[id]; !ok {
		return apperror.NotFound("vehicle", fmt.Sprint(id))
	}
	delete(f.vehicles, id)
	f.cascade(func(r model.FavoriteRecord) bool { return r.Kind == model.FavoriteVehicle && r.TargetID == id })
	return nil
}

// ===== favorites =====

func (f *fakeStore) AddFavorite(ctx context.Context, kind model.FavoriteKind, userID, targetID int64) (*model.FavoriteRecord, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	if _, err := f.FindFavorite(ctx, kind, userID, targetID); err == nil {
		return nil, apperror.Conflict("favorite "+string(kind), kind.TargetField())
	}
	r := model.FavoriteRecord{ID: f.id(), Kind: kind, UserID: userID, TargetID: targetID}
	f.favorites[favKey{kind, r.ID}] = r
	return &r, nil
}

func (f *fakeStore) GetFavorite(_ context.Context, kind model.FavoriteKind, id int64) (*model.FavoriteRecord, error) {
	r, ok := f.favorites[favKey{kind, id}]
	if !ok {
		return nil, apperror.NotFound("favorite "+string(kind), fmt.Sprint(id))
	}
	return &r, nil
}

func (f *fakeStore) FindFavorite(_ context.Context, kind model.FavoriteKind, userID, targetID int64) (*model.FavoriteRecord, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	for _, r := range f.favorites {
		if r.Kind == kind && r.UserID == userID && r.TargetID == targetID {
			return &r, nil
		}
	}
	return nil, apperror.NotFoundMessage("favorite not found")
}

func (f *fakeStore) ListFavorites(_ context.Context, kind model.FavoriteKind) ([]model.FavoriteRecord, error) {
	out := make([]model.FavoriteRecord, 0)
	for _, r := range f.favorites {
		if r.Kind == kind {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeStore) ListAllFavorites(ctx context.Context) ([]model.FavoriteRecord, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	var out []model.FavoriteRecord
	for _, kind := range model.FavoriteKinds {
		part, _ := f.ListFavorites(ctx, kind)
		out = append(out, part...)
	}
	return out, nil
}

func (f *fakeStore) DeleteFavorite(_ context.Context, kind model.FavoriteKind, id int64) error {
	if _, ok := f.favorites[favKey{kind, id}]; !ok {
		return apperror.NotFound("favorite "+string(kind), fmt.Sprint(id))
	}
	delete(f.favorites, favKey{kind, id})
	return nil
}
