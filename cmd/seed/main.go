package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/psicare/clinic-scheduling/internal/calendar"
	"github.com/psicare/clinic-scheduling/internal/clinic"
	"github.com/psicare/clinic-scheduling/internal/db"
	"github.com/psicare/clinic-scheduling/internal/money"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("seed starting")

	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		log.Fatal("POSTGRES_DSN is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := db.ConnectPostgres(ctx, dsn)
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	if err := db.Bootstrap(context.Background(), pool); err != nil {
		log.Fatalf("bootstrap schema: %v", err)
	}

	gofakeit.Seed(time.Now().UnixNano())

	practitioners, err := seedPractitioners(context.Background(), pool, 20)
	if err != nil {
		log.Fatalf("seed practitioners: %v", err)
	}
	if err := seedPatients(context.Background(), pool, practitioners, 25); err != nil {
		log.Fatalf("seed patients: %v", err)
	}
	if err := seedSlotGrids(context.Background(), pool, practitioners); err != nil {
		log.Fatalf("seed slots: %v", err)
	}

	log.Println("seed complete")
}

var specialties = []string{
	"Psicologia Clínica",
	"Psicanálise",
	"Terapia Cognitivo-Comportamental",
	"Psicologia Infantil",
	"Neuropsicologia",
	"Terapia de Casal",
}

func seedPractitioners(ctx context.Context, pool *pgxpool.Pool, count int) ([]uuid.UUID, error) {
	log.Printf("seeding %d practitioners", count)

	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	ids := make([]uuid.UUID, 0, count)
	for i := 0; i < count; i++ {
		id := uuid.New()
		specialty := specialties[gofakeit.Number(0, len(specialties)-1)]

		_, err := tx.Exec(ctx, `
			INSERT INTO practitioners (id, name, email, specialty, created_at, updated_at)
			VALUES ($1, $2, $3, $4, now(), now())
		`, id, gofakeit.Name(), gofakeit.Email(), specialty)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	log.Println("practitioners seeded")
	return ids, nil
}

func seedPatients(ctx context.Context, pool *pgxpool.Pool, practitioners []uuid.UUID, perPractitioner int) error {
	log.Printf("seeding %d patients per practitioner", perPractitioner)

	for _, pid := range practitioners {
		tx, err := pool.Begin(ctx)
		if err != nil {
			return err
		}

		for i := 0; i < perPractitioner; i++ {
			birth := gofakeit.DateRange(
				time.Date(1950, 1, 1, 0, 0, 0, 0, time.UTC),
				time.Date(2010, 12, 31, 0, 0, 0, 0, time.UTC),
			)
			phone := gofakeit.Phone()
			email := gofakeit.Email()

			_, err := tx.Exec(ctx, `
				INSERT INTO patients (id, practitioner_id, full_name, birth_date, phone, email, notes, created_at, updated_at)
				VALUES ($1, $2, $3, $4, $5, $6, '', now(), now())
			`, uuid.New(), pid, gofakeit.Name(), calendar.DateOnly(birth), phone, email)
			if err != nil {
				_ = tx.Rollback(ctx)
				return err
			}
		}

		if err := tx.Commit(ctx); err != nil {
			return err
		}
	}

	log.Println("patients seeded")
	return nil
}

// seedSlotGrids gives every practitioner a four-week grid of 50 minute
// sessions, reusing the same generator the schedule endpoint runs.
func seedSlotGrids(ctx context.Context, pool *pgxpool.Pool, practitioners []uuid.UUID) error {
	log.Println("seeding slot grids")

	clocks := []string{"09:00", "10:00", "11:00", "14:00", "15:00", "16:00"}
	times := make([]time.Time, 0, len(clocks))
	for _, c := range clocks {
		t, err := calendar.ParseClock(c)
		if err != nil {
			return err
		}
		times = append(times, t)
	}

	baseDate := calendar.DateOnly(time.Now().AddDate(0, 0, 1))
	repo := clinic.NewPgRepository(pool)

	for _, pid := range practitioners {
		price, err := money.ToCents(fmt.Sprintf("%.2f", gofakeit.Price(120, 300)))
		if err != nil {
			return err
		}

		for _, occ := range calendar.WeeklyTimes(baseDate, 4, times) {
			slot := &clinic.Slot{
				ID:             uuid.New(),
				PractitionerID: pid,
				Date:           calendar.DateOnly(occ),
				StartTime:      occ,
				EndTime:        occ.Add(50 * time.Minute),
				PriceCents:     &price,
			}
			if _, err := repo.CreateSlot(ctx, slot); err != nil {
				return err
			}
		}
	}

	log.Println("slot grids seeded")
	return nil
}
