package dto

import (
	"dashboard/shared/constant"
	"dashboard/shared/failure"
	"dashboard/shared/validator"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
)

const MsgPhotoMissing = "Photo file is required."

// PhotoUpload is the multipart payload of the photo endpoints.
type PhotoUpload struct {
	Header *multipart.FileHeader `json:"file" validate:"required,mimetypes=image/png image/jpg image/jpeg image/webp,maxfilesize=5" msg:"Photo must be a PNG, JPEG or WEBP image of at most 5 MB."`
	File   multipart.File        `json:"-"`
}

// FromRequest reads the file form field and validates its type and size.
// The caller closes File once the upload has been stored.
func (p *PhotoUpload) FromRequest(r *http.Request) error {
	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		if errors.Is(err, http.ErrNotMultipart) || errors.Is(err, http.ErrMissingBoundary) {
			return failure.Validation(MsgPhotoMissing) //nolint:wrapcheck
		}

		return failure.BadRequest(fmt.Errorf("failed to parse multipart form: %w", err)) //nolint:wrapcheck
	}

	file, header, err := r.FormFile(constant.FormFile)
	if err != nil {
		return failure.Validation(MsgPhotoMissing) //nolint:wrapcheck
	}

	p.File = file
	p.Header = header

	if err := validator.ValidateStruct(p); err != nil {
		_ = file.Close()

		return err //nolint:wrapcheck
	}

	return nil
}
