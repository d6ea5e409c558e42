/*
Package ports defines the driven ports (interfaces) of ChemBot.

These interfaces decouple the chat shell from where solutions are stored and the
front ends from the shell itself.

# Key Interfaces

  - SolutionLibrary: Finds worked solutions for a paper selection (e.g., from Loam or Memory).
  - Watchable: Notifies about library changes for hot-reload.
  - Shell: The interactive core that runners render and navigate.
*/
package ports
