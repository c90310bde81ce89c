// Package provisioning loads the classroom inventory from a YAML seed file
// and upserts it into the store.
//
// The file looks like:
//
//	classrooms:
//	  - room_number: A101
//	    block: A
//	    floor: 1
//	    capacity: 40
//	  - room_number: B204
//	    block: B
//	    floor: 2
//	    capacity: 120
//	    available: false
//
// available defaults to true when omitted.
package provisioning

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"classbook/internal/reservations/validator"
	mongotx "classbook/pkg/db/mongo"
	"classbook/pkg/logger"
	"classbook/pkg/model"
	"classbook/pkg/sanitizer"

	"go.mongodb.org/mongo-driver/mongo"
	"gopkg.in/yaml.v3"
)

var (
	ErrEmptyFile     = errors.New("seed file lists no classrooms")
	ErrDuplicateRoom = errors.New("duplicate room_number")
)

type classroomEntry struct {
	model.Classroom `yaml:",inline"`
	Available       *bool `yaml:"available"`
}

type seedFile struct {
	Classrooms []classroomEntry `yaml:"classrooms"`
}

type ClassroomWriter interface {
	Upsert(ctx context.Context, c *model.Classroom) error
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

// Parse decodes a seed document and normalizes room numbers and blocks.
// Unknown keys are rejected.
func Parse(r io.Reader) ([]*model.Classroom, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var file seedFile
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyFile
		}
		return nil, fmt.Errorf("failed to decode seed file: %w", err)
	}
	if len(file.Classrooms) == 0 {
		return nil, ErrEmptyFile
	}

	seen := make(map[string]bool, len(file.Classrooms))
	classrooms := make([]*model.Classroom, 0, len(file.Classrooms))
	for _, entry := range file.Classrooms {
		c := entry.Classroom
		c.ID = sanitizer.NormalizeIdentifier(c.ID)
		c.Block = sanitizer.NormalizeIdentifier(c.Block)
		c.Available = entry.Available == nil || *entry.Available
		c.LockedUntil = nil

		if seen[c.ID] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateRoom, c.ID)
		}
		seen[c.ID] = true
		classrooms = append(classrooms, &c)
	}
	return classrooms, nil
}

func ParseFile(path string) ([]*model.Classroom, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file %s: %w", path, err)
	}
	return Parse(bytes.NewReader(data))
}

type Seeder struct {
	writer    ClassroomWriter
	validator *validator.ReservationValidator
	log       *logger.Logger
}

func NewSeeder(writer ClassroomWriter, v *validator.ReservationValidator, log *logger.Logger) *Seeder {
	return &Seeder{
		writer:    writer,
		validator: v,
		log:       log.Component("provisioning"),
	}
}

// Seed validates every classroom first and then upserts them all in one
// transaction, so a bad entry leaves the store untouched.
func (s *Seeder) Seed(ctx context.Context, classrooms []*model.Classroom) (int, error) {
	for i, c := range classrooms {
		if err := s.validator.ValidateClassroom(c); err != nil {
			s.log.Warn("Invalid classroom in seed", "index", i, "room_number", c.ID, "error", err)
			return 0, fmt.Errorf("classroom #%d (%s): %w", i+1, c.ID, err)
		}
	}

	err := s.writer.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		for _, c := range classrooms {
			if err := s.writer.Upsert(sessCtx, c); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.log.Error("Failed to seed classrooms", "count", len(classrooms), "error", err)
		return 0, err
	}

	s.log.Info("Classrooms seeded", "count", len(classrooms))
	return len(classrooms), nil
}

func (s *Seeder) SeedFile(ctx context.Context, path string) (int, error) {
	classrooms, err := ParseFile(path)
	if err != nil {
		return 0, err
	}
	return s.Seed(ctx, classrooms)
}
