package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"mis-backend/internal/repositories"
	"mis-backend/internal/timeutil"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// snapshotPrefix namespaces ledger snapshots inside the bucket.
const snapshotPrefix = "ledgers/"

// LedgerSnapshot is the object written to the bucket: every stage ledger
// as raw JSON, under its store key.
type LedgerSnapshot struct {
	TakenAt string                     `json:"takenAt"`
	Ledgers map[string]json.RawMessage `json:"ledgers"`
}

// BackupInfo describes one stored snapshot.
type BackupInfo struct {
	Key          string `json:"key"`
	Size         int64  `json:"size"`
	LastModified string `json:"lastModified"`
}

// BackupConfig carries the S3-compatible target (R2 works too via the
// endpoint override).
type BackupConfig struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
}

// Enabled reports whether a target is configured.
func (c BackupConfig) Enabled() bool {
	return c.Bucket != "" && c.AccessKey != ""
}

// BackupService snapshots the stage ledgers to object storage and
// restores them for disaster recovery.
type BackupService struct {
	repo *repositories.StageRepository
	cfg  BackupConfig
}

func NewBackupService(repo *repositories.StageRepository, cfg BackupConfig) *BackupService {
	return &BackupService{repo: repo, cfg: cfg}
}

func (s *BackupService) client(ctx context.Context) (*s3.Client, error) {
	if !s.cfg.Enabled() {
		return nil, errors.New("backup target is not configured")
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.cfg.AccessKey,
			s.cfg.SecretKey,
			"",
		)),
		awsconfig.WithRegion(s.cfg.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("configure s3 client: %w", err)
	}
	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if s.cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(s.cfg.Endpoint)
		}
	}), nil
}

// Backup uploads a snapshot of every stage ledger and returns its key.
func (s *BackupService) Backup(ctx context.Context) (string, error) {
	client, err := s.client(ctx)
	if err != nil {
		return "", err
	}

	ledgers, err := s.repo.RawSnapshot(ctx)
	if err != nil {
		return "", err
	}
	snap := LedgerSnapshot{
		TakenAt: timeutil.Now().Format(time.RFC3339),
		Ledgers: ledgers,
	}
	body, err := json.Marshal(snap)
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}

	key := fmt.Sprintf("%s%s.json", snapshotPrefix, timeutil.Now().Format("2006-01-02_15-04-05"))
	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("upload snapshot: %w", err)
	}

	log.Printf("[Backup] Uploaded snapshot %s (%d bytes, %d ledgers)", key, len(body), len(ledgers))
	return key, nil
}

// List returns the stored snapshots.
func (s *BackupService) List(ctx context.Context) ([]BackupInfo, error) {
	client, err := s.client(ctx)
	if err != nil {
		return nil, err
	}

	result, err := client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.cfg.Bucket),
		Prefix: aws.String(snapshotPrefix),
	})
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}

	backups := make([]BackupInfo, 0, len(result.Contents))
	for _, obj := range result.Contents {
		info := BackupInfo{Key: aws.ToString(obj.Key)}
		if obj.Size != nil {
			info.Size = *obj.Size
		}
		if obj.LastModified != nil {
			info.LastModified = obj.LastModified.Format(time.RFC3339)
		}
		backups = append(backups, info)
	}
	return backups, nil
}

// Restore downloads a snapshot and writes the ledgers back to the store.
// An empty key restores the most recent snapshot.
func (s *BackupService) Restore(ctx context.Context, key string) error {
	client, err := s.client(ctx)
	if err != nil {
		return err
	}

	if key == "" {
		backups, err := s.List(ctx)
		if err != nil {
			return err
		}
		if len(backups) == 0 {
			return errors.New("no snapshots found")
		}
		latest := backups[0]
		for _, b := range backups[1:] {
			if b.LastModified > latest.LastModified {
				latest = b
			}
		}
		key = latest.Key
	}

	obj, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("download snapshot %s: %w", key, err)
	}
	defer obj.Body.Close()

	body, err := io.ReadAll(obj.Body)
	if err != nil {
		return fmt.Errorf("read snapshot %s: %w", key, err)
	}
	var snap LedgerSnapshot
	if err := json.Unmarshal(body, &snap); err != nil {
		return fmt.Errorf("decode snapshot %s: %w", key, err)
	}

	s.repo.Lock()
	defer s.repo.Unlock()
	if err := s.repo.RestoreSnapshot(ctx, snap.Ledgers); err != nil {
		return err
	}

	log.Printf("[Backup] Restored snapshot %s (%d ledgers)", key, len(snap.Ledgers))
	return nil
}
