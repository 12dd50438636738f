package utils

import (
	"context"
	"fmt"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// getGoogleClient initializes a Google Cloud Storage client.
// Prefer ADC (service account / GOOGLE_APPLICATION_CREDENTIALS). If you
// need to provide explicit JSON (e.g. locally), set GCS_CREDENTIALS_JSON.
func getGoogleClient(ctx context.Context) (*storage.Client, error) {
	if credJSON := os.Getenv("GCS_CREDENTIALS_JSON"); strings.TrimSpace(credJSON) != "" {
		client, err := storage.NewClient(ctx, option.WithCredentialsJSON([]byte(credJSON)))
		if err != nil {
			return nil, err
		}
		return client, nil
	}
	return storage.NewClient(ctx)
}

func contentTypeForReport(objectName string) string {
	switch {
	case strings.HasSuffix(objectName, ".pdf"):
		return "application/pdf"
	case strings.HasSuffix(objectName, ".docx"):
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		return "application/octet-stream"
	}
}

// UploadReportToGCS archives a generated report file under
// informes/<objectName> in the configured bucket.
func UploadReportToGCS(ctx context.Context, bucketName, objectName string, data []byte) error {
	if bucketName == "" {
		return fmt.Errorf("no GCS bucket configured")
	}

	client, err := getGoogleClient(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	wc := client.Bucket(bucketName).Object("informes/" + objectName).NewWriter(ctx)
	wc.ContentType = contentTypeForReport(objectName)

	if _, err := wc.Write(data); err != nil {
		return fmt.Errorf("failed to upload report to Google Cloud Storage: %v", err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("failed to close writer: %v", err)
	}
	return nil
}
