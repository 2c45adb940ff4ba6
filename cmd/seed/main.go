// seed 向数据库灌入演示数据：事件、实体、评估记录、承诺与用户。
// 数据取自 YAML 固定样本文件，可重复执行（每次执行追加新记录）。
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"time"

	klog "github.com/go-kratos/kratos/v2/log"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/go-kratos/kratos/v2/config"
	"github.com/go-kratos/kratos/v2/config/file"

	"github.com/iWorld-y/situation_dashboard/internal/conf"
	"github.com/iWorld-y/situation_dashboard/internal/data"
	"github.com/iWorld-y/situation_dashboard/internal/domain"
	"github.com/iWorld-y/situation_dashboard/internal/repo"
	"github.com/iWorld-y/situation_dashboard/pkg/logger"
)

var (
	flagconf     string
	flagfixtures string
	flaglevel    string
)

func init() {
	flag.StringVar(&flagconf, "conf", "configs/config.yaml", "config path, eg: -conf config.yaml")
	flag.StringVar(&flagfixtures, "fixtures", "configs/fixtures.yaml", "fixtures path, eg: -fixtures fixtures.yaml")
	flag.StringVar(&flaglevel, "log-level", "info", "log level: debug, info, warn, error")
}

// AssessmentFixture 一条评估样本；fields 按 category 解码为具体载荷
type AssessmentFixture struct {
	Category     string         `yaml:"category"`
	AssessorID   string         `yaml:"assessorId"`
	Verification string         `yaml:"verification"`
	AssessedAt   time.Time      `yaml:"assessedAt"`
	Fields       map[string]any `yaml:"fields"`
}

// DeliveryFixture 一次交付样本
type DeliveryFixture struct {
	Quantity float64 `yaml:"quantity"`
	Note     string  `yaml:"note"`
}

// CommitmentFixture 一条承诺样本
type CommitmentFixture struct {
	Donor        string            `yaml:"donor"`
	ResourceType string            `yaml:"resourceType"`
	Quantity     float64           `yaml:"quantity"`
	Unit         string            `yaml:"unit"`
	Status       string            `yaml:"status"`
	Deliveries   []DeliveryFixture `yaml:"deliveries"`
}

// EntityFixture 一个受灾实体样本及其评估
type EntityFixture struct {
	Name        string              `yaml:"name"`
	Kind        string              `yaml:"kind"`
	Latitude    float64             `yaml:"latitude"`
	Longitude   float64             `yaml:"longitude"`
	Population  int                 `yaml:"population"`
	Assessments []AssessmentFixture `yaml:"assessments"`
}

// IncidentFixture 一个事件样本及其下属数据
type IncidentFixture struct {
	Name        string              `yaml:"name"`
	Type        string              `yaml:"type"`
	Status      string              `yaml:"status"`
	Description string              `yaml:"description"`
	OccurredAt  time.Time           `yaml:"occurredAt"`
	Entities    []EntityFixture     `yaml:"entities"`
	Commitments []CommitmentFixture `yaml:"commitments"`
}

// UserFixture 一个用户样本（密码为明文，写库前哈希）
type UserFixture struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// Fixture 样本文件根结构
type Fixture struct {
	Incidents []IncidentFixture `yaml:"incidents"`
	Users     []UserFixture     `yaml:"users"`
}

func main() {
	flag.Parse()

	log, err := logger.New(flaglevel, "")
	if err != nil {
		panic(err)
	}

	c := config.New(config.WithSource(file.NewSource(flagconf)))
	defer c.Close()
	if err := c.Load(); err != nil {
		log.Fatalf("load config: %v", err)
	}
	var bc conf.Bootstrap
	if err := c.Scan(&bc); err != nil {
		log.Fatalf("scan config: %v", err)
	}

	raw, err := os.ReadFile(flagfixtures)
	if err != nil {
		log.Fatalf("read fixtures: %v", err)
	}
	var fx Fixture
	if err := yaml.Unmarshal(raw, &fx); err != nil {
		log.Fatalf("parse fixtures: %v", err)
	}

	klogger := klog.NewStdLogger(os.Stdout)
	d, cleanup, err := data.NewData(bc.Data, klogger)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	defer cleanup()

	ctx := context.Background()
	incidents := data.NewIncidentRepo(d, klogger)
	entities := data.NewEntityRepo(d, klogger)
	assessments := data.NewAssessmentRepo(d, klogger)
	commitments := data.NewCommitmentRepo(d, klogger)
	users := data.NewUserRepo(d, klogger)

	for _, uf := range fx.Users {
		hashed, err := bcrypt.GenerateFromPassword([]byte(uf.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("hash password for %s: %v", uf.Username, err)
		}
		if err := users.CreateUser(ctx, &domain.User{Username: uf.Username, PasswordHash: string(hashed)}); err != nil {
			log.Warnf("seed user %s: %v", uf.Username, err)
			continue
		}
		log.Infof("seeded user %s", uf.Username)
	}

	for _, inf := range fx.Incidents {
		in := &domain.Incident{
			Name:        inf.Name,
			Type:        inf.Type,
			Status:      inf.Status,
			Description: inf.Description,
			OccurredAt:  inf.OccurredAt,
		}
		if in.Status == "" {
			in.Status = "ACTIVE"
		}
		if err := incidents.CreateIncident(ctx, in); err != nil {
			log.Fatalf("seed incident %s: %v", inf.Name, err)
		}
		log.Infof("seeded incident %s (%s)", in.Name, in.ID)

		// 各实体互不依赖，并发写入
		g, gctx := errgroup.WithContext(ctx)
		for _, ef := range inf.Entities {
			ef := ef
			g.Go(func() error {
				return seedEntity(gctx, entities, assessments, in, ef, log)
			})
		}
		if err := g.Wait(); err != nil {
			log.Fatalf("seed entities for %s: %v", inf.Name, err)
		}

		for _, cf := range inf.Commitments {
			cm := &domain.Commitment{
				IncidentID:   in.ID,
				Donor:        cf.Donor,
				ResourceType: cf.ResourceType,
				Quantity:     cf.Quantity,
				Unit:         cf.Unit,
				Status:       domain.CommitmentStatus(cf.Status),
			}
			if cm.Status == "" {
				cm.Status = domain.CommitmentCommitted
			}
			if err := commitments.CreateCommitment(ctx, cm); err != nil {
				log.Fatalf("seed commitment %s/%s: %v", cf.Donor, cf.ResourceType, err)
			}
			for _, df := range cf.Deliveries {
				del := &domain.Delivery{CommitmentID: cm.ID, Quantity: df.Quantity, Note: df.Note}
				if err := commitments.AddDelivery(ctx, del); err != nil {
					log.Fatalf("seed delivery for %s: %v", cm.ID, err)
				}
			}
		}
	}

	log.Info("seed complete")
}

func seedEntity(
	ctx context.Context,
	entities repo.EntityRepo,
	assessments repo.AssessmentRepo,
	in *domain.Incident,
	ef EntityFixture,
	log *logrus.Logger,
) error {
	e := &domain.Entity{
		IncidentID: in.ID,
		Name:       ef.Name,
		Kind:       domain.EntityKind(ef.Kind),
		Latitude:   ef.Latitude,
		Longitude:  ef.Longitude,
		Population: ef.Population,
	}
	if err := entities.CreateEntity(ctx, e); err != nil {
		return err
	}

	for _, af := range ef.Assessments {
		category, err := domain.ParseCategory(af.Category)
		if err != nil {
			return err
		}
		// fields map 先编码回 JSON，再按类别还原为具体载荷
		blob, err := json.Marshal(af.Fields)
		if err != nil {
			return err
		}
		payload, err := domain.DecodePayload(category, blob)
		if err != nil {
			return err
		}

		verification := domain.VerificationStatus(af.Verification)
		if verification == "" {
			verification = domain.VerificationPending
		}
		assessedAt := af.AssessedAt
		if assessedAt.IsZero() {
			assessedAt = time.Now()
		}

		rec := &domain.AssessmentRecord{
			IncidentID:   in.ID,
			EntityID:     e.ID,
			Category:     category,
			AssessorID:   af.AssessorID,
			Verification: verification,
			AssessedAt:   assessedAt,
			Payload:      payload,
		}
		if err := assessments.Save(ctx, rec); err != nil {
			return err
		}
	}

	log.Infof("seeded entity %s with %d assessments", ef.Name, len(ef.Assessments))
	return nil
}
