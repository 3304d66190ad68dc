package handler

import (
	"fmt"
	"time"

	"Hey_Blog/internal/model"

	"github.com/gin-gonic/gin"
)

// JSON projections for the API, one map builder per entity. Counts are
// filled in by the handlers that have the services at hand.

func userJSON(u *model.User, postCount int64) gin.H {
	return gin.H{
		"url":                fmt.Sprintf("/api/users/%d", u.ID),
		"username":           u.Username,
		"member_since":       u.MemberSince.UTC().Format(time.RFC3339),
		"last_seen":          u.LastSeen.UTC().Format(time.RFC3339),
		"posts_url":          fmt.Sprintf("/api/users/%d/posts", u.ID),
		"followed_posts_url": fmt.Sprintf("/api/users/%d/timeline", u.ID),
		"post_count":         postCount,
	}
}

func postJSON(p *model.Post, commentCount int64) gin.H {
	return gin.H{
		"url":           fmt.Sprintf("/api/posts/%d", p.ID),
		"body":          p.Body,
		"body_html":     p.BodyHTML,
		"timestamp":     p.CreatedAt.UTC().Format(time.RFC3339),
		"author_url":    fmt.Sprintf("/api/users/%d", p.AuthorID),
		"comments_url":  fmt.Sprintf("/api/posts/%d/comments", p.ID),
		"comment_count": commentCount,
	}
}

func commentJSON(cm *model.Comment) gin.H {
	return gin.H{
		"url":        fmt.Sprintf("/api/comments/%d", cm.ID),
		"body":       cm.Body,
		"body_html":  cm.BodyHTML,
		"timestamp":  cm.CreatedAt.UTC().Format(time.RFC3339),
		"author_url": fmt.Sprintf("/api/users/%d", cm.AuthorID),
		"post_url":   fmt.Sprintf("/api/posts/%d", cm.PostID),
		"disabled":   cm.Disabled,
	}
}

func pageJSON(items []gin.H, total int64, page, perPage int) gin.H {
	return gin.H{
		"items":    items,
		"total":    total,
		"page":     page,
		"per_page": perPage,
	}
}
