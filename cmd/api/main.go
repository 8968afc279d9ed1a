package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/bkd-portal/attendance-backend-go/internal/config"
	appHTTP "github.com/bkd-portal/attendance-backend-go/internal/handler/http"
	"github.com/bkd-portal/attendance-backend-go/internal/pkg/clock"
	"github.com/bkd-portal/attendance-backend-go/internal/pkg/cron"
	"github.com/bkd-portal/attendance-backend-go/internal/pkg/database"
	"github.com/bkd-portal/attendance-backend-go/internal/pkg/jwt"
	"github.com/bkd-portal/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/bkd-portal/attendance-backend-go/internal/service/attendance"
	officeService "github.com/bkd-portal/attendance-backend-go/internal/service/office"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	attendanceRepo := postgresql.NewAttendanceRepository(db)
	officeRepo := postgresql.NewOfficeLocationRepository(db)
	auditSink := postgresql.NewAuditSink(db)
	userDirectory := postgresql.NewUserDirectory(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	systemClock := clock.System()

	attendanceSvc := attendanceService.NewAttendanceService(
		attendanceRepo,
		officeRepo,
		auditSink,
		systemClock,
		attendanceService.Policy{
			StrictGeofence:  cfg.Attendance.StrictGeofence,
			ToleranceMeters: cfg.Attendance.ToleranceMeters,
		},
	)
	officeSvc := officeService.NewOfficeLocationService(officeRepo)

	scheduler := cron.NewScheduler()
	absenceJobs := cron.NewAbsenceJobs(attendanceRepo, userDirectory, systemClock)
	absenceJobs.RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	officeHandler := appHTTP.NewOfficeLocationHandler(officeSvc)

	router := appHTTP.NewRouter(jwtService, attendanceHandler, officeHandler)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
