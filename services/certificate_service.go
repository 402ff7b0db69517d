package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log"
	"strconv"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
	config "github.com/nattapon-dev/learnhub_backend/configs"
	"github.com/nattapon-dev/learnhub_backend/database"
	"github.com/nattapon-dev/learnhub_backend/models"
)

const defaultPassingPercent = 80.0

func passingPercent() float64 {
	if raw := config.Config("PASSING_SCORE_PERCENT"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			return v
		}
	}
	return defaultPassingPercent
}

// CheckAndGenerateCertificate issues a course certificate when a final exam
// result reaches the passing threshold. Safe to run in a goroutine.
func CheckAndGenerateCertificate(result models.ExamResult, exam models.Exam) {
	if result.Percentage < passingPercent() {
		return
	}

	var course models.Course
	if err := database.DB.First(&course, "id = ?", exam.CourseID).Error; err != nil {
		log.Printf("🔥 Certificate: course %s not found: %v", exam.CourseID, err)
		return
	}

	var existingCert models.Certificate
	if err := database.DB.Where("user_id = ? AND course_id = ?", result.UserID, course.ID).
		First(&existingCert).Error; err == nil {
		return
	}

	studentName := "Student"
	var profile models.Profile
	if err := database.DB.First(&profile, "user_id = ?", result.UserID).Error; err == nil {
		if profile.FirstName != nil && profile.LastName != nil {
			studentName = *profile.FirstName + " " + *profile.LastName
		}
	}

	htmlData, err := generateCertificateHTML(studentName, course.Title, result.Percentage)
	if err != nil {
		log.Printf("🔥 Failed to generate certificate HTML: %v", err)
		return
	}

	pdfBytes, err := generatePDFFromHTML(htmlData)
	if err != nil {
		log.Printf("🔥 Failed to generate PDF: %v", err)
		return
	}

	uploadURL, err := uploadToCloudinary(pdfBytes, result.UserID.String())
	if err != nil {
		log.Printf("🔥 Failed to upload certificate to Cloudinary: %v", err)
		return
	}

	newCertificate := models.Certificate{
		UserID:         result.UserID,
		CourseID:       course.ID,
		ExamResultID:   result.ID,
		CourseTitle:    course.Title,
		CompletionDate: time.Now(),
		CertificateURL: uploadURL,
	}

	if err := database.DB.Create(&newCertificate).Error; err != nil {
		log.Printf("🔥 Failed to create certificate record for user %s: %v", result.UserID, err)
	} else {
		log.Printf("✅ Generated and uploaded certificate '%s' for user %s.", course.Title, result.UserID)
	}
}

func generateCertificateHTML(studentName, courseTitle string, percentage float64) (string, error) {
	tmpl, err := template.ParseFiles("templates/certificate.html")
	if err != nil {
		return "", err
	}

	data := struct {
		StudentName    string
		CourseTitle    string
		Percentage     string
		CompletionDate string
	}{
		StudentName:    studentName,
		CourseTitle:    courseTitle,
		Percentage:     fmt.Sprintf("%.1f%%", percentage),
		CompletionDate: time.Now().Format("January 2, 2006"),
	}

	var renderedHTML bytes.Buffer
	if err := tmpl.Execute(&renderedHTML, data); err != nil {
		return "", err
	}
	return renderedHTML.String(), nil
}

func generatePDFFromHTML(htmlContent string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	var pdfBuffer []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			pdf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuffer = pdf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuffer, nil
}

func uploadToCloudinary(fileBytes []byte, userID string) (string, error) {
	cld, err := cloudinary.NewFromURL(config.Config("CLOUDINARY_URL"))
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	uploadParams := uploader.UploadParams{
		PublicID:     fmt.Sprintf("certificates/%s_%s", userID, uuid.New().String()),
		Folder:       "learnhub_certificates",
		ResourceType: "raw",
	}

	uploadResult, err := cld.Upload.Upload(ctx, bytes.NewReader(fileBytes), uploadParams)
	if err != nil {
		return "", err
	}

	return uploadResult.SecureURL, nil
}
