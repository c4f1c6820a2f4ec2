package stores

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	sessionRecordVersion1 = 1

	flagCodeMismatch = 1 << 0
	flagIsRetrying   = 1 << 1
	flagHasUser      = 1 << 2
)

var (
	ErrSessionNotFound = errors.New("authentication session not found")
	ErrSessionExpired  = errors.New("authentication session expired")
	ErrSessionBackend  = errors.New("session backend unavailable")
)

// SessionRecord is the persisted slice of an authentication session. One
// record spans every round-trip of a single OTP flow; writes must be visible
// to the next request with the same identifier (read-after-write per key).
type SessionRecord struct {
	OTPToken     string
	OTPIssuedAt  int64
	Username     string
	UserTenant   string
	HasUser      bool
	StatusCode   string
	CodeMismatch bool
	IsRetrying   bool
	ScreenValue  string
	MobileNumber string

	TenantDomain     string
	QueryParams      string
	CallerSessionKey string

	ExpiresAt int64
}

// SessionStore persists binary-encoded session records in Redis with a TTL.
type SessionStore struct {
	redis  redis.UniversalClient
	prefix string
}

func NewSessionStore(redisClient redis.UniversalClient, prefix string) *SessionStore {
	if prefix == "" {
		prefix = "sos"
	}
	return &SessionStore{
		redis:  redisClient,
		prefix: prefix,
	}
}

func (s *SessionStore) key(identifier string) string {
	return s.prefix + ":" + identifier
}

func (s *SessionStore) Save(ctx context.Context, identifier string, record *SessionRecord, ttl time.Duration) error {
	encoded, err := encodeSessionRecord(record)
	if err != nil {
		return err
	}
	if err := s.redis.Set(ctx, s.key(identifier), encoded, ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrSessionBackend, err)
	}
	return nil
}

func (s *SessionStore) Get(ctx context.Context, identifier string) (*SessionRecord, error) {
	data, err := s.redis.Get(ctx, s.key(identifier)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrSessionBackend, err)
	}

	record, err := decodeSessionRecord(data)
	if err != nil {
		return nil, err
	}
	if record.ExpiresAt > 0 && time.Now().Unix() > record.ExpiresAt {
		// Cleanup is best-effort; the TTL will reap the key regardless.
		if _, err := s.redis.Del(ctx, s.key(identifier)).Result(); err != nil {
			log.Print("smsotp: expired session cleanup failed")
		}
		return nil, ErrSessionExpired
	}
	return record, nil
}

func (s *SessionStore) Delete(ctx context.Context, identifier string) (bool, error) {
	n, err := s.redis.Del(ctx, s.key(identifier)).Result()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrSessionBackend, err)
	}
	return n > 0, nil
}

func encodeSessionRecord(record *SessionRecord) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte(sessionRecordVersion1)

	var flags byte
	if record.CodeMismatch {
		flags |= flagCodeMismatch
	}
	if record.IsRetrying {
		flags |= flagIsRetrying
	}
	if record.HasUser {
		flags |= flagHasUser
	}
	buf.WriteByte(flags)

	if err := binary.Write(&buf, binary.BigEndian, record.ExpiresAt); err != nil {
		return nil, err
	}
	if err := binary.Write(&buf, binary.BigEndian, record.OTPIssuedAt); err != nil {
		return nil, err
	}

	fields := []string{
		record.OTPToken,
		record.Username,
		record.UserTenant,
		record.StatusCode,
		record.ScreenValue,
		record.MobileNumber,
		record.TenantDomain,
		record.QueryParams,
		record.CallerSessionKey,
	}
	for _, field := range fields {
		if len(field) > 65535 {
			return nil, errors.New("session field length exceeded")
		}
		if err := binary.Write(&buf, binary.BigEndian, uint16(len(field))); err != nil {
			return nil, err
		}
		buf.WriteString(field)
	}

	return buf.Bytes(), nil
}

func decodeSessionRecord(data []byte) (*SessionRecord, error) {
	reader := bytes.NewReader(data)

	version, err := reader.ReadByte()
	if err != nil {
		return nil, err
	}
	if version != sessionRecordVersion1 {
		return nil, errors.New("invalid session record version")
	}

	flags, err := reader.ReadByte()
	if err != nil {
		return nil, err
	}

	record := &SessionRecord{
		CodeMismatch: flags&flagCodeMismatch != 0,
		IsRetrying:   flags&flagIsRetrying != 0,
		HasUser:      flags&flagHasUser != 0,
	}
	if err := binary.Read(reader, binary.BigEndian, &record.ExpiresAt); err != nil {
		return nil, err
	}
	if err := binary.Read(reader, binary.BigEndian, &record.OTPIssuedAt); err != nil {
		return nil, err
	}

	fields := []*string{
		&record.OTPToken,
		&record.Username,
		&record.UserTenant,
		&record.StatusCode,
		&record.ScreenValue,
		&record.MobileNumber,
		&record.TenantDomain,
		&record.QueryParams,
		&record.CallerSessionKey,
	}
	for _, field := range fields {
		var length uint16
		if err := binary.Read(reader, binary.BigEndian, &length); err != nil {
			return nil, err
		}
		raw := make([]byte, length)
		if _, err := io.ReadFull(reader, raw); err != nil {
			return nil, err
		}
		*field = string(raw)
	}

	return record, nil
}
