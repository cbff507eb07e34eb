package core

import "encoding/json"

// User is the profile snapshot returned by the auth endpoints and cached in
// the session store.
type User struct {
	ID        string `json:"id,omitempty"`
	Username  string `json:"username"`
	FullName  string `json:"fullName,omitempty"`
	Email     string `json:"email,omitempty"`
	Role      string `json:"role,omitempty"`
	Points    int    `json:"points,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// Document is one record of a document listing. The backend is not
// consistent about field naming (snake_case vs camelCase, "_id" vs "id"),
// so decoding coalesces the known aliases into canonical fields.
type Document struct {
	ID           string `json:"id,omitempty"`
	MongoID      string `json:"_id,omitempty"`
	Title        string `json:"title"`
	Views        int    `json:"views,omitempty"`
	Pages        int    `json:"pages,omitempty"`
	SchoolID     string `json:"schoolId,omitempty"`
	SchoolName   string `json:"school_name,omitempty"`
	CategoryID   string `json:"categoryId,omitempty"`
	CategoryName string `json:"category_name,omitempty"`
	Uploader     string `json:"uploader,omitempty"`
	Language     string `json:"language,omitempty"`
	FileType     string `json:"fileType,omitempty"`
	ImageURL     string `json:"image_url,omitempty"`
	FileURL      string `json:"fileUrl,omitempty"`
	S3Key        string `json:"s3Key,omitempty"`
	CreatedAt    string `json:"created_at,omitempty"`
}

// Key resolves the document identifier, preferring "_id" over "id". Every
// document exposed by the backend carries at least one of the two.
func (d *Document) Key() string {
	if d.MongoID != "" {
		return d.MongoID
	}
	return d.ID
}

func (d *Document) UnmarshalJSON(data []byte) error {
	type document Document // drop methods to avoid recursion
	aux := struct {
		document
		ImageURLAlt  string `json:"imageUrl"`
		UploaderName string `json:"uploaderName"`
		CreatedAtAlt string `json:"createdAt"`
	}{}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	doc := Document(aux.document)
	if doc.ImageURL == "" {
		doc.ImageURL = aux.ImageURLAlt
	}
	if doc.Uploader == "" {
		doc.Uploader = aux.UploaderName
	}
	if doc.CreatedAt == "" {
		doc.CreatedAt = aux.CreatedAtAlt
	}
	*d = doc
	return nil
}

// LoginResult is the payload of a successful login. Token is required; a
// 200 response without one is a broken contract (ErrNoTokenInResponse).
type LoginResult struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// Lookup entities

type School struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Direct-to-S3 upload flow

type PresignResult struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

type RegisterDocumentInput struct {
	Title      string `json:"title"`
	SchoolID   string `json:"schoolId"`
	CategoryID string `json:"categoryId"`
	S3Key      string `json:"s3Key"`
	ImageURL   string `json:"imageUrl,omitempty"`
}

// Quizzes

type Quiz struct {
	ID        string         `json:"id,omitempty"`
	MongoID   string         `json:"_id,omitempty"`
	Title     string         `json:"title"`
	Questions []QuizQuestion `json:"questions,omitempty"`
	CreatedAt string         `json:"createdAt,omitempty"`
}

func (q *Quiz) Key() string {
	if q.MongoID != "" {
		return q.MongoID
	}
	return q.ID
}

type QuizQuestion struct {
	ID       string   `json:"id,omitempty"`
	Question string   `json:"question"`
	Options  []string `json:"options,omitempty"`
}

type QuizAttempt struct {
	AttemptID string `json:"attemptId,omitempty"`
	Quiz      *Quiz  `json:"quiz,omitempty"`
	StartedAt string `json:"startedAt,omitempty"`
}

type QuizResult struct {
	Score   float64 `json:"score"`
	Correct int     `json:"correct,omitempty"`
	Total   int     `json:"total,omitempty"`
}

// Payments

type Payment struct {
	OrderID   string `json:"orderId"`
	PayURL    string `json:"payUrl,omitempty"`
	AmountVND int    `json:"amountVND,omitempty"`
	Status    string `json:"status,omitempty"`
}

// Chat

type ChatMessage struct {
	ID           string `json:"id,omitempty"`
	DocumentID   string `json:"documentId,omitempty"`
	SenderID     string `json:"senderId,omitempty"`
	TargetUserID string `json:"targetUserId,omitempty"`
	Content      string `json:"content,omitempty"`
	ImageURL     string `json:"imageUrl,omitempty"`
	CreatedAt    string `json:"createdAt,omitempty"`
}

type Conversation struct {
	DocumentID  string `json:"documentId,omitempty"`
	UserID      string `json:"userId,omitempty"`
	Username    string `json:"username,omitempty"`
	LastMessage string `json:"lastMessage,omitempty"`
	UpdatedAt   string `json:"updatedAt,omitempty"`
}

// Social

type Comment struct {
	ID        string `json:"id,omitempty"`
	UserID    string `json:"userId,omitempty"`
	Username  string `json:"username,omitempty"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt,omitempty"`
}
