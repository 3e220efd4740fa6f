package helpers

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

const DestinationFolder = "destinations"

// UploadImages pushes the submitted image references to Cloudinary and
// returns the hosted URLs in the same order.
func UploadImages(ctx context.Context, cld *cloudinary.Cloudinary, imageRefs []string, folder string) ([]string, error) {
	var urls []string

	for _, ref := range imageRefs {
		if strings.TrimSpace(ref) == "" {
			continue
		}
		uploadResult, err := cld.Upload.Upload(ctx, ref, uploader.UploadParams{
			Folder: folder,
			Tags:   []string{"tripmitra"},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to upload image %s: %v", ref, err)
		}
		urls = append(urls, uploadResult.SecureURL)
	}

	return urls, nil
}
