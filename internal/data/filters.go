package data

import "github.com/jonesrussell/freefood/internal/textmatch"

var religious = []string{
	"iftar", "suhoor", "sehri", "eucharist", "prayer meeting",
	"bible study", "holy mass", "church service", "worship night",
}

var recap = []string{
	"thanks for coming", "thank you for coming", "thanks to everyone who",
	"thank you to everyone who", "thanks to all who came",
	"thanks for joining us", "thank you for joining us",
	"hope you all enjoyed", "hope everyone enjoyed", "was a huge success",
	"was a great success", "recap of", "last night's", "yesterday's event",
	"what a turnout", "great turnout",
}

var foodActivity = []string{
	"baking workshop", "cooking class", "cooking workshop", "bake off",
	"bake-off", "baking competition", "cooking competition", "cook-off",
	"cooking demo", "baking class", "cake decorating", "learn to cook",
	"learn to bake",
}

var giveaway = []string{
	"giveaway", "give away", "give-away", "enter to win", "chance to win",
	"for a chance", "prize draw", "raffle", "sweepstake", "tag a friend",
	"tag your friends", "winner announced",
}

var staffOnly = []string{
	"staff only", "for staff", "staff members only", "committee only",
	"committee members only", "committee meeting", "exec only",
	"volunteers only", "faculty only", "staff lunch", "staff event",
	"invite only", "invitation only", "by invitation",
}

var membersOnly = []string{
	"members only", "members-only", "for members", "exclusive to members",
	"paid-up members", "must be a member", "membership required",
}

var online = []string{
	"online", "zoom", "microsoft teams", "ms teams", "google meet",
	"webinar", "virtual", "livestream", "live stream",
}

// Registration wording that says nothing about the event format.
var onlineRegistration = []string{
	"sign up online", "signup online", "register online", "book online",
	"apply online", "rsvp online", "buy online", "order online",
	"tickets online", "available online", "details online", "info online",
	"online form", "online signup", "online sign up", "online registration",
}

var foodSale = []string{
	"bake sale", "cake sale", "fundraiser", "fundraising", "for sale",
	"food sale",
}

var freeOverride = []string{
	"free entry", "free admission", "free event", "free of charge",
	"no cost", "free to attend", "free for all", "free ticket",
	"free tickets", "free to join", "no entry fee",
}

var ticketLanguage = []string{
	"ticket", "entry fee", "admission", "cover charge", "tickets available",
	"tickets on sale", "buy tickets", "get your tickets",
}

var membershipContext = []string{
	"membership", "member", "join the society", "sign up fee",
	"registration", "register",
}

var (
	religiousSet    = textmatch.NewList(religious...)
	recapSet        = textmatch.NewList(recap...)
	foodActivitySet = textmatch.NewList(foodActivity...)
	giveawaySet     = textmatch.NewList(giveaway...)
	staffOnlySet    = textmatch.NewList(staffOnly...)
	membersOnlySet  = textmatch.NewList(membersOnly...)
	onlineSet       = textmatch.NewList(online...)
	onlineRegSet    = textmatch.NewList(onlineRegistration...)
	foodSaleSet     = textmatch.NewList(foodSale...)
	freeOverrideSet = textmatch.NewList(freeOverride...)
	ticketSet       = textmatch.NewList(ticketLanguage...)
	membershipSet   = textmatch.NewList(membershipContext...)
)

// Religious lists religious-service phrases.
func Religious() *textmatch.PhraseSet { return religiousSet }

// Recap lists past-tense thank-you and recap phrases.
func Recap() *textmatch.PhraseSet { return recapSet }

// FoodActivity lists activities where food is the subject, not the offer.
func FoodActivity() *textmatch.PhraseSet { return foodActivitySet }

// Giveaway lists contest and giveaway wording.
func Giveaway() *textmatch.PhraseSet { return giveawaySet }

// StaffOnly lists audience restrictions to staff.
func StaffOnly() *textmatch.PhraseSet { return staffOnlySet }

// MembersOnly lists members-only wording.
func MembersOnly() *textmatch.PhraseSet { return membersOnlySet }

// Online lists online and virtual event signals.
func Online() *textmatch.PhraseSet { return onlineSet }

// OnlineRegistration lists phrases where "online" describes sign-up, not the event.
func OnlineRegistration() *textmatch.PhraseSet { return onlineRegSet }

// FoodSale lists phrases for food sold rather than given away.
func FoodSale() *textmatch.PhraseSet { return foodSaleSet }

// FreeOverride lists phrases that mark an event free despite prices.
func FreeOverride() *textmatch.PhraseSet { return freeOverrideSet }

// TicketLanguage lists ticket and admission wording.
func TicketLanguage() *textmatch.PhraseSet { return ticketSet }

// MembershipContext lists wording that ties a price to membership.
func MembershipContext() *textmatch.PhraseSet { return membershipSet }
