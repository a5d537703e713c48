package scheduling

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/mentorhub/mentor_platform/models"
	"gorm.io/gorm"
)

// BlockView is the wire shape of an availability block.
type BlockView struct {
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	IsActive  bool   `json:"is_active"`
}

func ViewOf(b models.AvailabilityBlock) BlockView {
	return BlockView{
		DayOfWeek: b.DayOfWeek,
		StartTime: FormatClock(b.StartMinute),
		EndTime:   FormatClock(b.EndMinute),
		IsActive:  b.IsActive,
	}
}

// ValidateBlocks checks one submitted block set: every window must be
// well-formed and no two blocks on the same day may overlap.
func ValidateBlocks(blocks []models.AvailabilityBlock) error {
	for _, b := range blocks {
		if b.DayOfWeek < 0 || b.DayOfWeek > 6 {
			return &ValidationError{Reason: fmt.Sprintf("day_of_week must be 0-6, got %d", b.DayOfWeek)}
		}
		if b.StartMinute < 0 || b.EndMinute > MinutesPerDay {
			return &ValidationError{Reason: "block times must fall within a single day"}
		}
		if b.StartMinute >= b.EndMinute {
			return &ValidationError{Reason: fmt.Sprintf("block start %s must be before end %s",
				FormatClock(b.StartMinute), FormatClock(b.EndMinute))}
		}
	}

	sorted := make([]models.AvailabilityBlock, len(blocks))
	copy(sorted, blocks)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].DayOfWeek != sorted[j].DayOfWeek {
			return sorted[i].DayOfWeek < sorted[j].DayOfWeek
		}
		return sorted[i].StartMinute < sorted[j].StartMinute
	})
	for i := 1; i < len(sorted); i++ {
		prev, cur := sorted[i-1], sorted[i]
		if prev.DayOfWeek == cur.DayOfWeek &&
			MinutesOverlap(prev.StartMinute, prev.EndMinute, cur.StartMinute, cur.EndMinute) {
			return &ValidationError{Reason: fmt.Sprintf("blocks %s-%s and %s-%s overlap on day %d",
				FormatClock(prev.StartMinute), FormatClock(prev.EndMinute),
				FormatClock(cur.StartMinute), FormatClock(cur.EndMinute), cur.DayOfWeek)}
		}
	}
	return nil
}

// GetBlocks returns the mentor's active blocks ordered by day, then start.
func GetBlocks(db *gorm.DB, mentorID uuid.UUID) ([]models.AvailabilityBlock, error) {
	var blocks []models.AvailabilityBlock
	err := db.Where("mentor_id = ? AND is_active = ?", mentorID, true).
		Order("day_of_week asc, start_minute asc").
		Find(&blocks).Error
	if err != nil {
		return nil, &StorageError{Err: err}
	}
	return blocks, nil
}

// GetBlocksForDay returns the mentor's active blocks for one weekday.
func GetBlocksForDay(db *gorm.DB, mentorID uuid.UUID, dayOfWeek int) ([]models.AvailabilityBlock, error) {
	var blocks []models.AvailabilityBlock
	err := db.Where("mentor_id = ? AND day_of_week = ? AND is_active = ?", mentorID, dayOfWeek, true).
		Order("start_minute asc").
		Find(&blocks).Error
	if err != nil {
		return nil, &StorageError{Err: err}
	}
	return blocks, nil
}

// ReplaceBlocks supersedes all of the mentor's blocks in one atomic step.
// Either the full new set is stored or, on any failure, the old set survives.
func ReplaceBlocks(db *gorm.DB, mentorID uuid.UUID, blocks []models.AvailabilityBlock) error {
	if err := ValidateBlocks(blocks); err != nil {
		return err
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("mentor_id = ?", mentorID).Delete(&models.AvailabilityBlock{}).Error; err != nil {
			return err
		}
		if len(blocks) == 0 {
			return nil
		}
		for i := range blocks {
			blocks[i].ID = uuid.New()
			blocks[i].MentorID = mentorID
		}
		return tx.Create(&blocks).Error
	})
	if err != nil {
		return &StorageError{Err: err}
	}
	return nil
}
