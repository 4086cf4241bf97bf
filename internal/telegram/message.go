package telegram

import (
	"time"

	"github.com/gotd/td/tg"

	"telegram-media-downloader/pkg/models"
)

// messageFromTG maps a raw API message to the domain message. Returns nil
// for messages without downloadable media.
func messageFromTG(raw tg.MessageClass) *Message {
	m, ok := raw.(*tg.Message)
	if !ok || m.Media == nil {
		return nil
	}

	msg := &Message{
		ID:   m.ID,
		Date: time.Unix(int64(m.Date), 0),
	}

	if reply, ok := m.GetReplyTo(); ok {
		if header, ok := reply.(*tg.MessageReplyHeader); ok {
			if topID, ok := header.GetReplyToTopID(); ok {
				msg.TopicID = topID
			}
		}
	}

	switch media := m.Media.(type) {
	case *tg.MessageMediaPhoto:
		photo, ok := media.Photo.(*tg.Photo)
		if !ok {
			return nil
		}
		msg.photo = photo
		msg.Kind = models.KindPhoto
		msg.Extension = ".jpg"
		msg.Size, msg.photoThumb = largestPhotoSize(photo)
		msg.Filename = fallbackName(models.KindPhoto, m.ID, ".jpg")
	case *tg.MessageMediaDocument:
		doc, ok := media.Document.(*tg.Document)
		if !ok {
			return nil
		}
		msg.document = doc
		msg.Size = doc.Size
		msg.MimeType = doc.MimeType

		for _, attr := range doc.Attributes {
			if filename, ok := attr.(*tg.DocumentAttributeFilename); ok {
				msg.Filename = filename.FileName
				msg.Extension = extensionOf(filename.FileName)
				break
			}
		}

		msg.Kind = classifyDocument(doc.MimeType, msg.Extension)
		if msg.Extension == "" {
			msg.Extension = ExtensionForMime(doc.MimeType)
		}
		if msg.Filename == "" {
			msg.Filename = fallbackName(msg.Kind, m.ID, msg.Extension)
		}
	default:
		return nil
	}

	return msg
}

// largestPhotoSize picks the biggest available photo size and its type
// discriminator, which the file location needs.
func largestPhotoSize(photo *tg.Photo) (int64, string) {
	var best int
	var bestType string
	for _, s := range photo.Sizes {
		switch size := s.(type) {
		case *tg.PhotoSize:
			if size.Size > best {
				best = size.Size
				bestType = size.Type
			}
		case *tg.PhotoSizeProgressive:
			for _, n := range size.Sizes {
				if n > best {
					best = n
					bestType = size.Type
				}
			}
		}
	}
	return int64(best), bestType
}
