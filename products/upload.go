package products

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"verda/utils"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
)

const productUploadDir = "static/productpic"

// UploadImage accepts a multipart product image, stores the original and a
// 300px thumbnail, and returns the public path to attach to a product.
func UploadImage(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "Image file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if !utils.ValidateImageFileType(w, header) {
		return
	}

	img, err := imaging.Decode(file)
	if err != nil {
		log.Println("UploadImage decode error:", err)
		http.Error(w, "Failed to decode image", http.StatusBadRequest)
		return
	}

	// keep a sanitized trace of the original name for back-office lookups
	base := utils.SanitizeFilename(strings.TrimSuffix(header.Filename, filepath.Ext(header.Filename)))
	fileName := uuid.New().String() + "_" + base + ".jpg"
	originalPath := filepath.Join(productUploadDir, fileName)
	thumbDir := filepath.Join(productUploadDir, "thumb")
	thumbPath := filepath.Join(thumbDir, fileName)

	if err := os.MkdirAll(thumbDir, 0755); err != nil {
		log.Println("UploadImage mkdir error:", err)
		http.Error(w, "Failed to store image", http.StatusInternalServerError)
		return
	}

	if err := imaging.Save(img, originalPath); err != nil {
		log.Println("UploadImage save error:", err)
		http.Error(w, "Failed to store image", http.StatusInternalServerError)
		return
	}

	thumb := imaging.Resize(img, 300, 0, imaging.Lanczos)
	if err := imaging.Save(thumb, thumbPath); err != nil {
		log.Println("UploadImage thumbnail error:", err)
		http.Error(w, "Failed to store thumbnail", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"image": fmt.Sprintf("/static/productpic/%s", fileName),
		"thumb": fmt.Sprintf("/static/productpic/thumb/%s", fileName),
	})
}
