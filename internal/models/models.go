package models

// Domain models matching the database schema in db/migrations/0001_init.sql

type User struct {
	ID           int64  `json:"id" db:"id"`
	Name         string `json:"name" db:"name" validate:"required"`
	Email        string `json:"email" db:"email" validate:"required,email"`
	Role         Role   `json:"role" db:"role"`
	IsVerified   bool   `json:"isVerified" db:"is_verified"`
	PasswordHash string `json:"-" db:"password_hash"`
	Created      int64  `json:"created" db:"created"`
	Updated      int64  `json:"updated" db:"updated"`
}

// FreelancerProfile is the freelancer-specific record linked one-to-one
// with a user. Skills is stored as a JSON array column.
type FreelancerProfile struct {
	ID                int64    `json:"id" db:"id"`
	UserID            int64    `json:"userId" db:"user_id"`
	Skills            []string `json:"skills" db:"skills"`
	Expertise         string   `json:"expertise,omitempty" db:"expertise"`
	Experience        string   `json:"experience,omitempty" db:"experience"`
	Portfolio         string   `json:"portfolio,omitempty" db:"portfolio"`
	Verified          bool     `json:"verified" db:"verified"`
	VerificationLevel string   `json:"verificationLevel" db:"verification_level"`
	AverageRating     float64  `json:"averageRating" db:"average_rating"`
	ReviewCount       int64    `json:"reviewCount" db:"review_count"`
	Updated           int64    `json:"updated" db:"updated"`
}

type Project struct {
	ID           int64         `json:"id" db:"id"`
	ClientID     int64         `json:"clientId" db:"client_id"`
	FreelancerID *int64        `json:"freelancerId,omitempty" db:"freelancer_id"`
	Title        string        `json:"title" db:"title" validate:"required"`
	Description  string        `json:"description" db:"description" validate:"required"`
	Requirements string        `json:"requirements,omitempty" db:"requirements"`
	Deadline     int64         `json:"deadline" db:"deadline"`
	Status       ProjectStatus `json:"status" db:"status"`
	Progress     int           `json:"progress" db:"progress"`
	ReminderSent bool          `json:"reminderSent" db:"reminder_sent"`
	IsHourly     bool          `json:"isHourly" db:"is_hourly"`
	HourLogs     []HourLog     `json:"hourLogs,omitempty" db:"hour_logs"`
	Milestones   []Milestone   `json:"milestones,omitempty" db:"milestones"`
	Created      int64         `json:"created" db:"created"`
	Updated      int64         `json:"updated" db:"updated"`
}

type HourLog struct {
	Date        int64   `json:"date"`
	Hours       float64 `json:"hours"`
	Description string  `json:"description,omitempty"`
}

type Milestone struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Completed   bool   `json:"completed"`
	Progress    int    `json:"progress"`
}

type Bid struct {
	ID            int64     `json:"id" db:"id"`
	ProjectID     int64     `json:"projectId" db:"project_id"`
	FreelancerID  int64     `json:"freelancerId" db:"freelancer_id"`
	Amount        float64   `json:"amount" db:"amount" validate:"required,gt=0"`
	Message       string    `json:"message,omitempty" db:"message"`
	Status        BidStatus `json:"status" db:"status"`
	CounterAmount *float64  `json:"counterAmount,omitempty" db:"counter_amount"`
	Countered     bool      `json:"countered" db:"countered"`
	Created       int64     `json:"created" db:"created"`
	Updated       int64     `json:"updated" db:"updated"`
}

type Review struct {
	ID           int64  `json:"id" db:"id"`
	ProjectID    int64  `json:"projectId" db:"project_id"`
	ClientID     int64  `json:"clientId" db:"client_id"`
	FreelancerID int64  `json:"freelancerId" db:"freelancer_id"`
	Rating       int    `json:"rating" db:"rating" validate:"required,min=1,max=5"`
	Comment      string `json:"comment,omitempty" db:"comment"`
	Response     string `json:"response,omitempty" db:"response"`
	Created      int64  `json:"created" db:"created"`
}

type Message struct {
	ID         int64  `json:"id" db:"id"`
	SenderID   int64  `json:"senderId" db:"sender_id"`
	ReceiverID int64  `json:"receiverId" db:"receiver_id"`
	Content    string `json:"content" db:"content" validate:"required"`
	ReadStatus bool   `json:"readStatus" db:"read_status"`
	Metadata   string `json:"metadata,omitempty" db:"metadata"`
	Created    int64  `json:"created" db:"created"`
}

type Notification struct {
	ID      int64            `json:"id" db:"id"`
	UserID  int64            `json:"userId" db:"user_id"`
	Type    NotificationType `json:"type" db:"type"`
	Message string           `json:"message" db:"message" validate:"required"`
	IsRead  bool             `json:"isRead" db:"is_read"`
	Link    string           `json:"link,omitempty" db:"link"`
	Created int64            `json:"created" db:"created"`
}
