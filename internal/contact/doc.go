// Package contact implements the contact form submission flow.
//
// A Controller owns one form instance: the three user-entered fields and the
// SubmissionStatus shown to the user. Submit moves the status from Idle to
// Sending and then to exactly one of Success or Error. A Success status falls
// back to Idle after the configured reset delay (5 seconds by default). The
// email relay is reached through relay.Sender so the controller never
// touches the network directly.
package contact
