package main

import (
	"fmt"
	"net/http"

	"github.com/kintai-app/kintai-backend-go/internal/config"
	appHTTP "github.com/kintai-app/kintai-backend-go/internal/handler/http"
	"github.com/kintai-app/kintai-backend-go/internal/pkg/clock"
	"github.com/kintai-app/kintai-backend-go/internal/pkg/database"
	"github.com/kintai-app/kintai-backend-go/internal/pkg/jwt"
	"github.com/kintai-app/kintai-backend-go/internal/repository/postgresql"
	attendanceService "github.com/kintai-app/kintai-backend-go/internal/service/attendance"
	authService "github.com/kintai-app/kintai-backend-go/internal/service/auth"
	reportService "github.com/kintai-app/kintai-backend-go/internal/service/report"
	userService "github.com/kintai-app/kintai-backend-go/internal/service/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	clk := clock.System()

	userRepo := postgresql.NewUserRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	breaktimeRepo := postgresql.NewBreaktimeRepository(db)
	jwtRepo := postgresql.NewJWTRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	authSvc := authService.NewAuthService(db, userRepo, jwtService, jwtRepo)
	attendanceSvc := attendanceService.NewAttendanceService(db, clk, attendanceRepo, breaktimeRepo)
	reportSvc := reportService.NewReportService(clk, userRepo, attendanceRepo, breaktimeRepo)
	userSvc := userService.NewUserService(userRepo)

	authHandler := appHTTP.NewAuthHandler(jwtService, authSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(clk, attendanceSvc, reportSvc)
	adminHandler := appHTTP.NewAdminHandler(clk, attendanceSvc, reportSvc, userSvc)

	router := appHTTP.NewRouter(jwtService, authHandler, attendanceHandler, adminHandler)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
