package services

// Services defined in this package:
// - AuthService: registration, login and token lifecycle
// - UserService: directory, profiles and preferences
// - EventService: event lifecycle, registrations and comments
// - ChatService: community chat messages, edits and reactions
// - MentorshipService: mentorship requests, meetings and feedback
// - AuthorizationService: ownership and party checks shared by the above
