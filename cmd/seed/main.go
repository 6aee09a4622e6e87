// Command seed fills the database with demo users and three months of
// attendance history. Run it once against an empty schema.
package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/kintai-app/kintai-backend-go/internal/config"
	"github.com/kintai-app/kintai-backend-go/internal/domain/attendance"
	"github.com/kintai-app/kintai-backend-go/internal/domain/user"
	"github.com/kintai-app/kintai-backend-go/internal/pkg/database"
	"github.com/kintai-app/kintai-backend-go/internal/repository/postgresql"
	"golang.org/x/crypto/bcrypt"
)

var noteChoices = []string{
	"打刻漏れのため",
	"残業の要請があったため",
	"休憩時間に間違いがあるため",
	"通常勤務",
	"客先対応のため",
	"会議が長引いたため",
	"交通遅延のため",
	"早朝出勤のため",
}

var staffNames = []string{
	"佐藤花子",
	"鈴木一郎",
	"高橋美咲",
	"渡辺健太",
	"伊藤さくら",
	"山本大輔",
	"中村優子",
	"小林翔太",
	"加藤美穂",
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		log.Fatal("Error connecting to database: ", err)
	}
	defer db.Close()

	ctx := context.Background()
	userRepo := postgresql.NewUserRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	breaktimeRepo := postgresql.NewBreaktimeRepository(db)

	admin := mustCreateUser(ctx, userRepo, "管理者", "admin@example.com", "admin123", true)

	staff := []user.User{
		mustCreateUser(ctx, userRepo, "田中太郎", "user@example.com", "user1234", false),
	}
	for i, name := range staffNames {
		email := fmt.Sprintf("staff%d@example.com", i+1)
		staff = append(staff, mustCreateUser(ctx, userRepo, name, email, randomPassword(), false))
	}

	seedAttendances(ctx, attendanceRepo, breaktimeRepo, staff, admin.ID)

	fmt.Println("Seeding complete.")
	fmt.Println("Admin login:  admin@example.com / admin123")
	fmt.Println("Staff login:  user@example.com / user1234")
}

func mustCreateUser(ctx context.Context, repo user.UserRepository, name, email, password string, isAdmin bool) user.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash password: ", err)
	}
	hashed := string(hash)

	created, err := repo.Create(ctx, user.User{
		Name:         name,
		Email:        email,
		PasswordHash: &hashed,
		IsAdmin:      isAdmin,
	})
	if err != nil {
		log.Fatalf("Failed to create user %s: %v", email, err)
	}
	return created
}

func randomPassword() string {
	const chars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, 32)
	for i := range b {
		b[i] = chars[rand.Intn(len(chars))]
	}
	return string(b)
}

// seedAttendances writes roughly three months of history per staff
// member, with random off days, statuses, and break patterns.
func seedAttendances(ctx context.Context, attendanceRepo attendance.AttendanceRepository, breaktimeRepo attendance.BreaktimeRepository, staff []user.User, adminID string) {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	first := today.AddDate(0, -3, 0)
	first = time.Date(first.Year(), first.Month(), 1, 0, 0, 0, 0, first.Location())

	for _, u := range staff {
		for date := first; date.Before(today); date = date.AddDate(0, 0, 1) {
			// Roughly one day in five off.
			if rand.Intn(100) < 20 {
				continue
			}

			start := date.Add(time.Duration(7+rand.Intn(5))*time.Hour + time.Duration(rand.Intn(60))*time.Minute)
			end := date.Add(time.Duration(16+rand.Intn(7))*time.Hour + time.Duration(rand.Intn(60))*time.Minute)
			note := noteChoices[rand.Intn(len(noteChoices))]

			att := attendance.Attendance{
				UserID:    u.ID,
				Date:      date,
				StartTime: &start,
				EndTime:   &end,
				Note:      &note,
			}

			switch r := rand.Intn(10); {
			case r < 8:
				att.Status = attendance.StatusUnapproved
			case r < 9:
				approvedAt := end.Add(time.Duration(1+rand.Intn(3)) * time.Hour)
				att.Status = attendance.StatusApproved
				att.ApproverID = &adminID
				att.ApprovedAt = &approvedAt
			default:
				att.Status = attendance.StatusEntered
				att.Note = nil
			}

			created, err := attendanceRepo.Create(ctx, att)
			if err != nil {
				log.Fatalf("Failed to seed attendance for %s on %s: %v", u.Name, date.Format("2006-01-02"), err)
			}

			seedBreaks(ctx, breaktimeRepo, created, date)
		}
	}
}

func seedBreaks(ctx context.Context, repo attendance.BreaktimeRepository, att attendance.Attendance, date time.Time) {
	type span struct{ start, end time.Time }
	var taken []span

	count := 1 + rand.Intn(3)
	for i := 0; i < count; i++ {
		var start, end time.Time
		if i == 0 {
			// Lunch break, 30 to 90 minutes.
			start = date.Add(time.Duration(11+rand.Intn(3))*time.Hour + time.Duration(rand.Intn(60))*time.Minute)
			end = start.Add(time.Duration(30+rand.Intn(61)) * time.Minute)
		} else {
			// Short afternoon break, 5 to 30 minutes.
			start = date.Add(time.Duration(14+rand.Intn(3))*time.Hour + time.Duration(rand.Intn(60))*time.Minute)
			end = start.Add(time.Duration(5+rand.Intn(26)) * time.Minute)
		}

		overlaps := false
		for _, s := range taken {
			if start.Before(s.end) && end.After(s.start) {
				overlaps = true
				break
			}
		}
		if overlaps {
			continue
		}
		taken = append(taken, span{start, end})

		_, err := repo.Create(ctx, attendance.Breaktime{
			AttendanceID: att.ID,
			UserID:       att.UserID,
			StartTime:    start,
			EndTime:      &end,
		})
		if err != nil {
			log.Fatalf("Failed to seed breaktime: %v", err)
		}
	}
}
