// cmd/seed/main.go
//
// カタログ(単語・グループ・学習アクティビティ)の初期投入コマンド。
// 既存の名前はスキップするので何度実行しても安全。学習履歴には触れない。
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"go_lang_portal/internal/config"
	"go_lang_portal/internal/model"
	"go_lang_portal/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type seedWord struct {
	German        string  `json:"german"`
	Pronunciation string  `json:"pronunciation"`
	English       string  `json:"english"`
	Gender        *string `json:"gender"`
	Plural        *string `json:"plural"`
}

type seedActivity struct {
	Name       string `json:"name"`
	URL        string `json:"url"`
	PreviewURL string `json:"preview_url"`
}

func main() {
	wordsPath := flag.String("words", "seeds/words.json", "グループ名 -> 単語リスト のJSONファイル")
	activitiesPath := flag.String("activities", "seeds/study_activities.json", "学習アクティビティのJSONファイル")
	configPath := flag.String("config", "configs", "設定ファイルのディレクトリ")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		slog.Error("Error loading configuration", slog.Any("error", err))
		os.Exit(1)
	}

	db, err := repository.NewDB(cfg.Database.URL, logger)
	if err != nil {
		slog.Error("Error initializing database", slog.Any("error", err))
		os.Exit(1)
	}
	if err := repository.AutoMigrate(db); err != nil {
		slog.Error("Error migrating database schema", slog.Any("error", err))
		os.Exit(1)
	}

	ctx := context.Background()
	if err := seedActivities(ctx, db, *activitiesPath); err != nil {
		slog.Error("Error seeding study activities", slog.Any("error", err))
		os.Exit(1)
	}
	if err := seedWords(ctx, db, *wordsPath); err != nil {
		slog.Error("Error seeding words", slog.Any("error", err))
		os.Exit(1)
	}

	slog.Info("Seeding completed")
}

func seedActivities(ctx context.Context, db *gorm.DB, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	var activities []seedActivity
	if err := json.Unmarshal(data, &activities); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	activityRepo := repository.NewGormActivityRepository()
	created := 0
	for _, a := range activities {
		_, err := activityRepo.FindByName(ctx, db, a.Name)
		if err == nil {
			continue // 既存
		}
		if !errors.Is(err, model.ErrNotFound) {
			return err
		}
		activity := &model.StudyActivity{
			ActivityID: uuid.New(),
			Name:       a.Name,
			URL:        a.URL,
			PreviewURL: a.PreviewURL,
			CreatedAt:  time.Now(),
		}
		if err := activityRepo.Create(ctx, db, activity); err != nil {
			return err
		}
		created++
	}
	slog.Info("Study activities seeded", slog.Int("created", created), slog.Int("total", len(activities)))
	return nil
}

func seedWords(ctx context.Context, db *gorm.DB, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	var groups map[string][]seedWord
	if err := json.Unmarshal(data, &groups); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	groupRepo := repository.NewGormGroupRepository()
	wordRepo := repository.NewGormWordRepository()

	for name, words := range groups {
		name, words := name, words
		err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			group, err := groupRepo.FindByName(ctx, tx, name)
			if errors.Is(err, model.ErrNotFound) {
				group = &model.Group{GroupID: uuid.New(), Name: name}
				if err := groupRepo.Create(ctx, tx, group); err != nil {
					return err
				}
			} else if err != nil {
				return err
			} else {
				slog.Info("Group already seeded, skipping", slog.String("group", name))
				return nil
			}

			for _, w := range words {
				word := &model.Word{
					WordID:        uuid.New(),
					German:        w.German,
					Pronunciation: w.Pronunciation,
					English:       w.English,
					Gender:        w.Gender,
					Plural:        w.Plural,
				}
				if err := wordRepo.Create(ctx, tx, word); err != nil {
					return err
				}
				// AddWord が words_count も更新する
				if err := groupRepo.AddWord(ctx, tx, word.WordID, group.GroupID); err != nil {
					return err
				}
			}
			slog.Info("Group seeded", slog.String("group", name), slog.Int("words", len(words)))
			return nil
		})
		if err != nil {
			return fmt.Errorf("seed group %s: %w", name, err)
		}
	}
	return nil
}
