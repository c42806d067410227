package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/sakif/starwars-api/internal/apperror"
	"github.com/sakif/starwars-api/internal/model"
)

// =========================================================================
// PLANETS
// =========================================================================

func TestPlanetCRUD(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	p := &model.Planet{Name: "Tatooine", Population: int64Ptr(200000), Diameter: int64Ptr(10465)}
	if err := db.CreatePlanet(ctx, p); err != nil {
		t.Fatalf("CreatePlanet() error = %v", err)
	}

	got, err := db.GetPlanet(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetPlanet() error = %v", err)
	}
	if got.ID != p.ID || got.Name != "Tatooine" || *got.Population != 200000 {
		t.Errorf("GetPlanet() = %+v", got)
	}

	got.Diameter = nil
	if err := db.UpdatePlanet(ctx, got); err != nil {
		t.Fatalf("UpdatePlanet() error = %v", err)
	}
	after, _ := db.GetPlanet(ctx, p.ID)
	if after.Diameter != nil {
		t.Errorf("Diameter = %d, want NULL", *after.Diameter)
	}
	if *after.Population != 200000 {
		t.Errorf("Population changed to %d", *after.Population)
	}

	list, err := db.ListPlanets(ctx)
	if err != nil || len(list) != 1 {
		t.Fatalf("ListPlanets() = %v, %v", list, err)
	}

	if err := db.DeletePlanet(ctx, p.ID); err != nil {
		t.Fatalf("DeletePlanet() error = %v", err)
	}
	if _, err := db.GetPlanet(ctx, p.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetPlanet() after delete = %v, want ErrNotFound", err)
	}
}

func TestCreatePlanet_DuplicateName(t *testing.T) {
	db := newTestDB(t)
	createTestPlanet(t, db, "Hoth")

	err := db.CreatePlanet(context.Background(), &model.Planet{Name: "Hoth"})
	if !errors.Is(err, apperror.ErrConflict) {
		t.Fatalf("CreatePlanet() error = %v, want ErrConflict", err)
	}
}

func TestPlanet_NotFound(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	if err := db.UpdatePlanet(ctx, &model.Planet{ID: 7, Name: "Nowhere"}); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("UpdatePlanet() error = %v, want ErrNotFound", err)
	}
	if err := db.DeletePlanet(ctx, 7); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("DeletePlanet() error = %v, want ErrNotFound", err)
	}
}

// =========================================================================
// CHARACTERS
// =========================================================================

func TestCharacterCRUD(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	c := &model.Character{Name: "Luke", LastName: "Skywalker", Height: int64Ptr(172), HairColor: strPtr("blond"), BirthYear: int64Ptr(-19)}
	if err := db.CreateCharacter(ctx, c); err != nil {
		t.Fatalf("CreateCharacter() error = %v", err)
	}

	got, err := db.GetCharacter(ctx, c.ID)
	if err != nil {
		t.Fatalf("GetCharacter() error = %v", err)
	}
	if got.LastName != "Skywalker" || *got.Height != 172 || *got.HairColor != "blond" || *got.BirthYear != -19 {
		t.Errorf("GetCharacter() = %+v", got)
	}

	got.HairColor = strPtr("brown")
	if err := db.UpdateCharacter(ctx, got); err != nil {
		t.Fatalf("UpdateCharacter() error = %v", err)
	}
	after, _ := db.GetCharacter(ctx, c.ID)
	if *after.HairColor != "brown" || *after.Height != 172 {
		t.Errorf("UpdateCharacter() result = %+v", after)
	}

	if err := db.DeleteCharacter(ctx, c.ID); err != nil {
		t.Fatalf("DeleteCharacter() error = %v", err)
	}
	if err := db.DeleteCharacter(ctx, c.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("second DeleteCharacter() = %v, want ErrNotFound", err)
	}
}

func TestUpdateCharacter_NameTaken(t *testing.T) {
	db := newTestDB(t)
	createTestCharacter(t, db, "Luke", "Skywalker")
	leia := createTestCharacter(t, db, "Leia", "Organa")

	leia.Name = "Luke"
	err := db.UpdateCharacter(context.Background(), leia)
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || !errors.Is(err, apperror.ErrConflict) || appErr.Field != "name" {
		t.Fatalf("UpdateCharacter() error = %v, want name conflict", err)
	}
}

// =========================================================================
// VEHICLES
// =========================================================================

func TestVehicleCRUD(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	v := &model.Vehicle{Name: "Sand Crawler", Model: strPtr("Digger Crawler"), CostInCredits: int64Ptr(150000)}
	if err := db.CreateVehicle(ctx, v); err != nil {
		t.Fatalf("CreateVehicle() error = %v", err)
	}

	got, err := db.GetVehicle(ctx, v.ID)
	if err != nil {
		t.Fatalf("GetVehicle() error = %v", err)
	}
	if *got.Model != "Digger Crawler" || *got.CostInCredits != 150000 {
		t.Errorf("GetVehicle() = %+v", got)
	}

	createTestVehicle(t, db, "T-16 skyhopper")
	list, err := db.ListVehicles(ctx)
	if err != nil || len(list) != 2 || list[0].ID != v.ID {
		t.Fatalf("ListVehicles() = %+v, %v", list, err)
	}

	if err := db.DeleteVehicle(ctx, v.ID); err != nil {
		t.Fatalf("DeleteVehicle() error = %v", err)
	}
	if _, err := db.GetVehicle(ctx, v.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetVehicle() after delete = %v, want ErrNotFound", err)
	}
}

func TestCreateVehicle_DuplicateName(t *testing.T) {
	db := newTestDB(t)
	createTestVehicle(t, db, "X-34 landspeeder")

	if err := db.CreateVehicle(context.Background(), &model.Vehicle{Name: "X-34 landspeeder"}); !errors.Is(err, apperror.ErrConflict) {
		t.Fatalf("CreateVehicle() error = %v, want ErrConflict", err)
	}
}
