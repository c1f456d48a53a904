package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"pharmaops/internal/config"
	"pharmaops/internal/database"
	"pharmaops/internal/middleware"
	"pharmaops/internal/model"
	"pharmaops/internal/repository"
	"pharmaops/internal/service"
	"pharmaops/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func main() {
	actorName := flag.String("actor", "auditctl", "actor name recorded for this run")
	format := flag.String("format", service.FormatCSV, "export format: csv or xlsx")
	out := flag.String("out", "", "export destination (default stdout)")
	role := flag.String("role", model.RoleAuditor, "token role")
	vendorID := flag.String("vendor", "", "token vendor id")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	if len(flag.Args()) == 0 {
		usage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	switch flag.Args()[0] {
	case "verify":
		svc, log := auditService(cfg)
		defer func() { _ = log.Sync() }()
		report, err := svc.VerifyChain(context.Background(), model.Actor{Name: *actorName, Role: model.RoleAuditor})
		if err != nil {
			fmt.Fprintf(os.Stderr, "verify: %v\n", err)
			os.Exit(1)
		}
		if report.OK {
			fmt.Printf("OK: %d entries, last id=%d hash=%s\n", report.Checked, report.LastID, report.LastHash)
			os.Exit(0)
		}
		fmt.Printf("FAIL: entry %d: %s (%d entries verified before it)\n", report.FirstInvalidID, report.Reason, report.Checked)
		os.Exit(2)

	case "export":
		svc, log := auditService(cfg)
		defer func() { _ = log.Sync() }()
		var w io.Writer = os.Stdout
		if *out != "" {
			f, err := os.Create(*out)
			if err != nil {
				fmt.Fprintf(os.Stderr, "export: %v\n", err)
				os.Exit(1)
			}
			defer f.Close()
			w = f
		}
		if err := svc.ExportReport(context.Background(), model.Actor{Name: *actorName, Role: model.RoleAuditor}, *format, w); err != nil {
			fmt.Fprintf(os.Stderr, "export: %v\n", err)
			os.Exit(1)
		}

	case "token":
		actor := model.Actor{Name: *actorName, Role: *role}
		if *vendorID != "" {
			id, err := uuid.Parse(*vendorID)
			if err != nil {
				fmt.Fprintf(os.Stderr, "token: invalid vendor id: %v\n", err)
				os.Exit(1)
			}
			actor.VendorID = &id
		}
		token, err := middleware.IssueToken([]byte(cfg.JWT.Secret), actor, *ttl)
		if err != nil {
			fmt.Fprintf(os.Stderr, "token: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(token)

	default:
		usage()
		os.Exit(1)
	}
}

func auditService(cfg *config.Config) (service.AuditService, *zap.Logger) {
	log, err := logger.New(cfg.Log.Environment, cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		log.Fatal("Database connection failed", zap.Error(err))
	}
	return service.NewAuditService(repository.NewAuditRepository(db), repository.NewTransactionManager(db), log), log
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: auditctl [-actor name] verify")
	fmt.Fprintln(os.Stderr, "       auditctl [-format csv|xlsx] [-out file] export")
	fmt.Fprintln(os.Stderr, "       auditctl [-actor name] [-role ROLE] [-vendor id] [-ttl 24h] token")
}
