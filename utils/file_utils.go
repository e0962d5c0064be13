package utils

import (
	"bytes"
	"fmt"
	"image/jpeg"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/disintegration/imaging"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

const (
	// Base directory for storing uploaded files
	uploadBaseDir = "uploads"
	// Base URL for serving files
	baseURL = "/uploads"
	// Maximum file size (10MB)
	maxFileSize = 10 * 1024 * 1024

	// Listing photos wider than this get downscaled before storage.
	maxImageWidth = 1600
)

var (
	allowedImageExts = map[string]bool{
		".jpg":  true,
		".jpeg": true,
		".png":  true,
		".gif":  true,
		".webp": true,
	}
	allowedVideoExts = map[string]bool{
		".mp4":  true,
		".mov":  true,
		".webm": true,
	}
	allowedExcelExts = map[string]bool{
		".xlsx": true,
		".xls":  true,
	}
)

// cleanFilename removes any potentially dangerous characters from the filename
func cleanFilename(filename string) string {
	filename = filepath.Base(filename)
	reg := regexp.MustCompile(`[^a-zA-Z0-9.-]`)
	return reg.ReplaceAllString(filename, "")
}

// ValidateFileType checks if the file extension is allowed for the given media type
func ValidateFileType(filename, mediaType string) error {
	ext := strings.ToLower(filepath.Ext(filename))

	switch mediaType {
	case "image":
		if !allowedImageExts[ext] {
			return fmt.Errorf("unsupported image format. Allowed formats: jpg, jpeg, png, gif, webp")
		}
	case "video":
		if !allowedVideoExts[ext] {
			return fmt.Errorf("unsupported video format. Allowed formats: mp4, mov, webm")
		}
	case "excel":
		if !allowedExcelExts[ext] {
			return fmt.Errorf("unsupported spreadsheet format. Allowed formats: xlsx, xls")
		}
	default:
		return fmt.Errorf("invalid media type. Must be 'image', 'video' or 'excel'")
	}
	return nil
}

// UploadFileToPath saves a file to a specific subdirectory and returns the URL
func UploadFileToPath(fileData []byte, filename string, mediaType string, subDir string) (string, error) {
	if len(fileData) > maxFileSize {
		return "", fmt.Errorf("file too large. Maximum size is %d bytes", maxFileSize)
	}

	cleanName := cleanFilename(filename)
	if err := ValidateFileType(cleanName, mediaType); err != nil {
		return "", err
	}

	fullPath := filepath.Join(uploadBaseDir, subDir, cleanName)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %v", filepath.Dir(fullPath), err)
	}

	if err := os.WriteFile(fullPath, fileData, 0644); err != nil {
		return "", fmt.Errorf("failed to write file %s: %v", fullPath, err)
	}

	cleanSubDir := strings.TrimPrefix(subDir, "uploads/")
	return fmt.Sprintf("%s/%s/%s", baseURL, cleanSubDir, cleanName), nil
}

// UploadListingImage downscales oversized listing photos and stores them
// as JPEG under the given subdirectory.
func UploadListingImage(fileData []byte, filename string, subDir string) (string, error) {
	if len(fileData) > maxFileSize {
		return "", fmt.Errorf("file too large. Maximum size is %d bytes", maxFileSize)
	}

	cleanName := cleanFilename(filename)
	if err := ValidateFileType(cleanName, "image"); err != nil {
		return "", err
	}

	img, err := imaging.Decode(bytes.NewReader(fileData))
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %v", err)
	}

	if img.Bounds().Dx() > maxImageWidth {
		img = imaging.Resize(img, maxImageWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85}); err != nil {
		return "", fmt.Errorf("failed to encode image: %v", err)
	}

	jpegName := strings.TrimSuffix(cleanName, filepath.Ext(cleanName)) + ".jpg"
	return UploadFileToPath(buf.Bytes(), jpegName, "image", subDir)
}

// GenerateVideoThumbnail extracts the first second of an uploaded video
// tour, scales it down and saves it under uploads/thumbnails.
func GenerateVideoThumbnail(videoURL string) (string, error) {
	videoPath := strings.TrimPrefix(videoURL, baseURL+"/")
	fullVideoPath := filepath.Join(uploadBaseDir, videoPath)

	tempDir := os.TempDir()
	thumbnailPath := filepath.Join(tempDir, "thumbnail.jpg")

	err := ffmpeg.Input(fullVideoPath).
		Output(thumbnailPath, ffmpeg.KwArgs{"vframes": 1, "ss": "00:00:01"}).
		OverWriteOutput().
		Run()
	if err != nil {
		return "", fmt.Errorf("failed to generate thumbnail: %v", err)
	}
	defer os.Remove(thumbnailPath)

	thumbnailData, err := os.ReadFile(thumbnailPath)
	if err != nil {
		return "", fmt.Errorf("failed to read thumbnail file: %v", err)
	}

	img, err := imaging.Decode(bytes.NewReader(thumbnailData))
	if err != nil {
		return "", fmt.Errorf("failed to decode thumbnail: %v", err)
	}

	resized := imaging.Resize(img, 320, 0, imaging.Lanczos)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: 85}); err != nil {
		return "", fmt.Errorf("failed to encode thumbnail: %v", err)
	}

	videoFilename := filepath.Base(videoPath)
	thumbnailName := strings.TrimSuffix(videoFilename, filepath.Ext(videoFilename)) + ".jpg"
	return UploadFileToPath(buf.Bytes(), thumbnailName, "image", "thumbnails")
}
