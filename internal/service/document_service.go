package service

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fuelflow/internal/config"
	"github.com/fuelflow/internal/constants"
	"github.com/fuelflow/internal/logger"
	"github.com/fuelflow/internal/models"
	"github.com/fuelflow/internal/repository"
	"github.com/fuelflow/internal/workflow"

	"github.com/google/uuid"
)

// DocumentService stores delivery paperwork scans against orders: the file
// on disk, the metadata row in the database.
type DocumentService struct {
	cfg       *config.Config
	orderRepo repository.OrderRepository
	docRepo   repository.DocumentRepository
	noteRepo  repository.NoteRepository
}

// NewDocumentService creates the document service.
func NewDocumentService(cfg *config.Config, orderRepo repository.OrderRepository, docRepo repository.DocumentRepository, noteRepo repository.NoteRepository) *DocumentService {
	return &DocumentService{
		cfg:       cfg,
		orderRepo: orderRepo,
		docRepo:   docRepo,
		noteRepo:  noteRepo,
	}
}

// Upload saves an uploaded file and records it against the order.
func (s *DocumentService) Upload(actor Actor, orderID uint, documentType string, file *multipart.FileHeader) (*models.Document, error) {
	if !validDocumentType(documentType) {
		return nil, fmt.Errorf("%w: unknown document type %q", workflow.ErrValidation, documentType)
	}

	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil || !workflow.CanViewOrder(actor.Department, actor.UserID, order) {
		return nil, ErrNotFound
	}

	if file.Size > s.cfg.Upload.MaxSize {
		return nil, ErrUploadTooLarge
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if len(s.cfg.Upload.AllowedExtensions) > 0 {
		if ext == "" || !isAllowedExtension(ext, s.cfg.Upload.AllowedExtensions) {
			return nil, ErrUploadType
		}
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	buffer := make([]byte, 512)
	if _, err := src.Read(buffer); err != nil && err != io.EOF {
		return nil, err
	}
	if _, err := src.Seek(0, 0); err != nil {
		return nil, err
	}
	contentType := http.DetectContentType(buffer)

	filename := fmt.Sprintf("%s%s", uuid.New().String(), ext)
	now := time.Now()
	savePath := filepath.Join(s.cfg.Upload.Dir, order.OrderID, filename)
	if err := os.MkdirAll(filepath.Dir(savePath), 0755); err != nil {
		return nil, err
	}
	dst, err := os.Create(savePath)
	if err != nil {
		return nil, err
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(savePath)
		return nil, err
	}

	doc := &models.Document{
		OrderRef:     order.ID,
		OrderID:      order.OrderID,
		FileName:     filepath.Base(file.Filename),
		DocumentType: documentType,
		StoragePath:  savePath,
		FileSize:     file.Size,
		MimeType:     contentType,
		UploadedBy:   actor.Username,
		UploadedAt:   now,
	}
	if err := s.docRepo.Create(doc); err != nil {
		os.Remove(savePath)
		return nil, err
	}

	note := &models.OrderNote{
		OrderRef:       order.ID,
		OrderID:        order.OrderID,
		UserID:         actor.UserID,
		UserName:       actor.Username,
		UserDepartment: actor.Department,
		Note:           fmt.Sprintf("Document uploaded: %s (%s)", doc.FileName, documentType),
		NoteType:       constants.NoteTypeDocument,
		CreatedAt:      now,
	}
	if err := s.noteRepo.Create(note); err != nil {
		logger.Warnw("document_note_failed",
			"order_id", order.ID,
			"document_id", doc.ID,
			"error", err,
		)
	}

	return doc, nil
}

// List returns the document records of an order the actor may see.
func (s *DocumentService) List(actor Actor, orderID uint) ([]models.Document, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil || !workflow.CanViewOrder(actor.Department, actor.UserID, order) {
		return nil, ErrNotFound
	}
	return s.docRepo.ListByOrder(order.ID)
}

// Open returns the metadata and a reader for a stored document.
func (s *DocumentService) Open(actor Actor, orderID, documentID uint) (*models.Document, *os.File, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, nil, err
	}
	if order == nil || !workflow.CanViewOrder(actor.Department, actor.UserID, order) {
		return nil, nil, ErrNotFound
	}

	doc, err := s.docRepo.GetByID(documentID)
	if err != nil {
		return nil, nil, err
	}
	if doc == nil || doc.OrderRef != order.ID {
		return nil, nil, ErrNotFound
	}

	f, err := os.Open(doc.StoragePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	return doc, f, nil
}

// Delete removes a document record and its stored file. The audit trail
// keeps a note of the removal.
func (s *DocumentService) Delete(actor Actor, orderID, documentID uint) error {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return err
	}
	if order == nil || !workflow.CanViewOrder(actor.Department, actor.UserID, order) {
		return ErrNotFound
	}

	doc, err := s.docRepo.GetByID(documentID)
	if err != nil {
		return err
	}
	if doc == nil || doc.OrderRef != order.ID {
		return ErrNotFound
	}

	if err := s.docRepo.Delete(doc.ID); err != nil {
		return err
	}
	if err := os.Remove(doc.StoragePath); err != nil && !os.IsNotExist(err) {
		logger.Warnw("document_file_remove_failed",
			"document_id", doc.ID,
			"path", doc.StoragePath,
			"error", err,
		)
	}

	note := &models.OrderNote{
		OrderRef:       order.ID,
		OrderID:        order.OrderID,
		UserID:         actor.UserID,
		UserName:       actor.Username,
		UserDepartment: actor.Department,
		Note:           fmt.Sprintf("Document removed: %s (%s)", doc.FileName, doc.DocumentType),
		NoteType:       constants.NoteTypeDocument,
		CreatedAt:      time.Now(),
	}
	if err := s.noteRepo.Create(note); err != nil {
		logger.Warnw("document_note_failed",
			"order_id", order.ID,
			"document_id", doc.ID,
			"error", err,
		)
	}
	return nil
}

func isAllowedExtension(ext string, allowed []string) bool {
	for _, a := range allowed {
		if strings.EqualFold(strings.TrimSpace(a), ext) {
			return true
		}
	}
	return false
}

func validDocumentType(documentType string) bool {
	for _, known := range constants.DocumentTypes {
		if known == documentType {
			return true
		}
	}
	return false
}
