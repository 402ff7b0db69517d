package utils

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/nattapon-dev/learnhub_backend/models"
	"gorm.io/gorm"
)

func GenerateUniqueStudentID(tx *gorm.DB) (string, error) {
	seededRand := rand.New(rand.NewSource(time.Now().UnixNano()))

	for {
		id := fmt.Sprintf("ST%d%06d", time.Now().Year(), seededRand.Intn(1000000))

		var profile models.Profile
		err := tx.Where("student_id = ?", id).First(&profile).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return id, nil
			}
			return "", err
		}
	}
}
