/*
Package domain contains the core models shared by the ChemBot chat shell and its front ends.

It holds plain data and small pure helpers only. Parsing of message bodies lives in
package document; the interactive state machine lives in package chat.

# Key Entities

  - Message: One transcript entry, written by the user or the bot.
  - PaperSelection: The past-paper question picked in the wizard.
  - Solution: A static worked solution for one selection.
  - AppState: The screen the chat shell is on (welcome, selecting-paper, chat).
  - ActionRequest: A structural representation of what the host should render or ask for.
*/
package domain
