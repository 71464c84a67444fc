package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/vallamsettyashok/portfolio/internal/contact"
	"github.com/vallamsettyashok/portfolio/internal/profile"
)

type handlers struct {
	profile *profile.Profile
	inbox   Deliverer
	owner   string
	log     logrus.FieldLogger
}

func (h *handlers) index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"profile": h.profile,
	})
}

// contactForm is the HTMX fragment with an empty form.
func (h *handlers) contactForm(c *gin.Context) {
	c.HTML(http.StatusOK, "contact.html", gin.H{
		"title": "Contact Me",
	})
}

// submitAPI is the JSON endpoint the contact flow posts to. Any non-2xx
// answer makes the client fall back to the visitor's mail client.
func (h *handlers) submitAPI(c *gin.Context) {
	var f contact.Form
	if err := c.ShouldBindJSON(&f); err != nil {
		h.log.WithError(err).WithField("request_id", c.GetString(requestIDKey)).Debug("invalid contact payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": contact.MsgMissingFields})
		return
	}

	id, err := h.inbox.Deliver(c.Request.Context(), f)
	if err != nil {
		var verr *contact.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": contact.MsgMissingFields})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "message could not be delivered"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": contact.StatusSent.String(), "id": id})
}

// submitForm handles the HTMX form post and answers with a fragment. When
// delivery fails the fragment links a pre-filled mailto draft instead.
func (h *handlers) submitForm(c *gin.Context) {
	var f contact.Form
	if err := c.ShouldBind(&f); err != nil {
		h.log.WithError(err).WithField("request_id", c.GetString(requestIDKey)).Debug("invalid contact form")
	}

	if _, err := h.inbox.Deliver(c.Request.Context(), f); err != nil {
		var verr *contact.ValidationError
		if errors.As(err, &verr) {
			c.HTML(http.StatusOK, "contact-error.html", gin.H{
				"error": contact.StatusError.Message(contact.MsgMissingFields, h.owner),
			})
			return
		}
		c.HTML(http.StatusOK, "contact-error.html", gin.H{
			"error":  contact.StatusError.Message(contact.MsgUndelivered, h.owner),
			"mailto": contact.BuildMailto(h.owner, f),
		})
		return
	}

	c.HTML(http.StatusOK, "contact-success.html", gin.H{
		"success": contact.StatusSent.Message("", h.owner),
	})
}
