package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"note-share-be/internal/constant"
	"note-share-be/internal/dto"
	"note-share-be/internal/entity"
	"note-share-be/internal/pkg/serverutils"
	"note-share-be/internal/repository"
	"note-share-be/pkg/blobstore"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

// sniffLen is how much of an upload is buffered to detect its content type.
const sniffLen = 3072

type INoteService interface {
	List(ctx context.Context) ([]*entity.Note, error)
	Show(ctx context.Context, id string) (*entity.Note, error)
	Upload(ctx context.Context, req *dto.UploadNoteRequest, file dto.UploadNoteFile, content io.Reader) (*entity.Note, error)
	Delete(ctx context.Context, id string) error
}

type noteService struct {
	noteRepository   repository.INoteRepository
	blobStore        blobstore.Store
	publisherService IPublisherService
	blobFolder       string
	now              func() time.Time
}

func NewNoteService(
	noteRepository repository.INoteRepository,
	blobStore blobstore.Store,
	publisherService IPublisherService,
	blobFolder string,
) INoteService {
	if blobFolder == "" {
		blobFolder = constant.DefaultBlobFolder
	}
	return &noteService{
		noteRepository:   noteRepository,
		blobStore:        blobStore,
		publisherService: publisherService,
		blobFolder:       blobFolder,
		now:              time.Now,
	}
}

func (s *noteService) List(ctx context.Context) ([]*entity.Note, error) {
	return s.noteRepository.GetAll(ctx)
}

func (s *noteService) Show(ctx context.Context, id string) (*entity.Note, error) {
	return s.noteRepository.GetById(ctx, id)
}

func (s *noteService) Upload(ctx context.Context, req *dto.UploadNoteRequest, file dto.UploadNoteFile, content io.Reader) (*entity.Note, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", serverutils.ErrBadRequest)
	}

	noteType := strings.TrimSpace(req.Type)
	if noteType == "" {
		noteType = constant.DefaultNoteType
	}

	contentType := strings.TrimSpace(file.ContentType)
	if contentType == "" || contentType == "application/octet-stream" {
		detected, body, err := detectContentType(content)
		if err != nil {
			return nil, fmt.Errorf("read upload: %w", err)
		}
		contentType, content = detected, body
	}

	now := s.now().UTC()
	resourceType := resourceTypeFor(noteType)

	uploaded, err := s.blobStore.Upload(ctx, content, blobstore.UploadOptions{
		ResourceType: resourceType,
		Folder:       s.blobFolder + "/" + folderSegment(noteType),
		PublicID:     blobstore.SafeFileName(file.FileName, now),
		FileName:     file.FileName,
		ContentType:  contentType,
		Size:         file.Size,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: upload %s: %v", serverutils.ErrBlobStore, file.FileName, err)
	}

	note := &entity.Note{
		Id:        uuid.NewString(),
		Title:     title,
		Subject:   strings.TrimSpace(req.Subject),
		Desc:      strings.TrimSpace(req.Desc),
		Type:      noteType,
		FileName:  file.FileName,
		FileUrl:   uploaded.SecureURL,
		PublicId:  uploaded.PublicID,
		FileType:  contentType,
		FileSize:  file.Size,
		CreatedAt: now,
	}

	stored, err := s.noteRepository.Create(ctx, note)
	if err != nil {
		// Do not leave an orphaned blob behind a record that was never written.
		if destroyErr := s.blobStore.Destroy(ctx, uploaded.PublicID, blobstore.DestroyOptions{ResourceType: resourceType}); destroyErr != nil {
			log.Errorf("[CRITICAL] orphaned blob %s after failed save: %v", uploaded.PublicID, destroyErr)
		}
		return nil, fmt.Errorf("save note metadata: %w", err)
	}

	s.publish(ctx, constant.NoteEventCreated, stored)
	return stored, nil
}

// Delete removes the note record. Destroying the remote blob is best-effort:
// a failure is logged and the record is removed regardless.
func (s *noteService) Delete(ctx context.Context, id string) error {
	note, err := s.noteRepository.GetById(ctx, id)
	if err != nil {
		return err
	}

	if note.PublicId != "" {
		err := s.blobStore.Destroy(ctx, note.PublicId, blobstore.DestroyOptions{
			ResourceType: resourceTypeFor(note.Type),
		})
		if err != nil {
			log.Errorf("[BLOB] failed to destroy %s for note %s: %v", note.PublicId, note.Id, err)
		}
	}

	if err := s.noteRepository.Delete(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, constant.NoteEventDeleted, note)
	return nil
}

func (s *noteService) publish(ctx context.Context, event string, note *entity.Note) {
	if s.publisherService == nil {
		return
	}

	msgJson, err := json.Marshal(dto.NoteEventMessage{
		Event:    event,
		NoteId:   note.Id,
		Title:    note.Title,
		PublicId: note.PublicId,
		At:       s.now().UTC(),
	})
	if err == nil {
		err = s.publisherService.Publish(ctx, msgJson)
	}
	if err != nil {
		log.Warnf("[EVENT] failed to publish %s for note %s: %v", event, note.Id, err)
	}
}

func resourceTypeFor(noteType string) string {
	if noteType == constant.NoteTypeImage {
		return constant.ResourceTypeImage
	}
	return constant.ResourceTypeRaw
}

// folderSegment keeps a client-supplied type from escaping its folder.
func folderSegment(noteType string) string {
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			return r
		}
		return '_'
	}, noteType)
}

// detectContentType sniffs the head of content and returns a reader that
// still yields the full stream. Seekable content is rewound rather than
// wrapped so S3 clients can still sign the payload.
func detectContentType(content io.Reader) (string, io.Reader, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(content, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return "", nil, err
	}
	head = head[:n]
	detected := mimetype.Detect(head).String()

	if rs, ok := content.(io.ReadSeeker); ok {
		if _, err := rs.Seek(0, io.SeekStart); err != nil {
			return "", nil, err
		}
		return detected, rs, nil
	}
	return detected, io.MultiReader(bytes.NewReader(head), content), nil
}
